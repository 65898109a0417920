// internal/writers/table.go
// Column tables shared by the TSV and CSV formats.

package writers

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func init() {
	Register("tsv", writeTSV)
	Register("csv", writeCSV)
}

type column struct {
	name   string
	floats []float64
	ints   []int
	strs   []string
}

func (c column) len() int {
	switch {
	case c.strs != nil:
		return len(c.strs)
	case c.ints != nil:
		return len(c.ints)
	}
	return len(c.floats)
}

func (c column) cell(i int) string {
	switch {
	case c.strs != nil:
		return c.strs[i]
	case c.ints != nil:
		return strconv.Itoa(c.ints[i])
	}
	v := c.floats[i]
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// series carries the formatted cells so CSV and TSV print identical values.
func (c column) series() series.Series {
	cells := make([]string, c.len())
	for i := range cells {
		cells[i] = c.cell(i)
	}
	return series.New(cells, series.String, c.name)
}

// buildTable lays a report out as equal-length columns.
func buildTable(r Report) ([]column, error) {
	if len(r.Entries) == 0 {
		return nil, fmt.Errorf("nothing to write: report has no variants")
	}
	switch r.View {
	case ViewProfile:
		first := r.Entries[0].Profile
		cols := []column{{name: "depth_nm", floats: first.Depth}}
		for _, e := range r.Entries {
			if e.Profile.Len() != first.Len() {
				return nil, fmt.Errorf("profile %s has %d samples, %s has %d", e.Kind, e.Profile.Len(), r.Entries[0].Kind, first.Len())
			}
			cols = append(cols, column{name: "n_" + string(e.Kind), floats: e.Profile.Index})
		}
		return cols, nil

	case ViewStack:
		var variant []string
		var pos []int
		var n, k, d []float64
		for _, e := range r.Entries {
			n = append(n, e.Stack.RealIndices()...)
			for i, idx := range e.Stack.Indices {
				variant = append(variant, string(e.Kind))
				pos = append(pos, i)
				k = append(k, imag(idx))
				d = append(d, e.Stack.Thicknesses[i])
			}
		}
		return []column{
			{name: "variant", strs: variant},
			{name: "position", ints: pos},
			{name: "n", floats: n},
			{name: "k", floats: k},
			{name: "thickness_nm", floats: d},
		}, nil

	default:
		first := r.Entries[0].Curve
		if first == nil {
			return nil, fmt.Errorf("spectrum view requires swept curves")
		}
		cols := []column{{name: "wavelength_nm", floats: first.Wavelengths}}
		for _, e := range r.Entries {
			if e.Curve == nil || e.Curve.Len() != first.Len() {
				return nil, fmt.Errorf("curve %s is missing or has a different length", e.Kind)
			}
			cols = append(cols, column{name: "R_" + string(e.Kind), floats: e.Curve.R})
		}
		return cols, nil
	}
}

func writeTSV(w io.Writer, r Report, _ Options) error {
	cols, err := buildTable(r)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	if _, err := fmt.Fprintln(bw, strings.Join(names, "\t")); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for i := 0; i < cols[0].len(); i++ {
		for j, c := range cols {
			row[j] = c.cell(i)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSV(w io.Writer, r Report, _ Options) error {
	cols, err := buildTable(r)
	if err != nil {
		return err
	}
	ss := make([]series.Series, len(cols))
	for i, c := range cols {
		ss[i] = c.series()
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}
