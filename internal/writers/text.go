package writers

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/fatih/color"

	"rugate/core/spectrum"
)

func init() {
	Register("text", writeText)
}

type palette struct {
	heading *color.Color
	label   *color.Color
	value   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		heading: color.New(color.Bold),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.heading, p.label, p.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// writeText prints a human-readable report. Styling is applied outside tables
// so column alignment is unaffected.
func writeText(w io.Writer, r Report, o Options) error {
	p := newPalette(o.Color)
	ew := &errWriter{w: w}
	d := r.Design

	ew.printf("%s\n", p.heading.Sprint("Rugate design"))
	ew.printf("  target %s nm, %s layers, nH=%.4g nL=%.4g substrate=%.4g ambient=%.4g\n",
		p.value.Sprintf("%g", d.TargetWavelength), p.value.Sprintf("%d", d.NumLayers),
		d.HighIndex, d.LowIndex, d.SubstrateIndex, d.AmbientIndex)
	ew.printf("  average index %.4f, amplitude %.4f\n", d.AverageIndex, d.Amplitude)
	ew.printf("  film %.3f nm, layer %.4f nm, apodization width %.3f nm (%.2g of film)\n",
		d.FilmThickness, d.LayerThickness, d.ApodizationSigma, d.ApodizationWidth)
	if ew.err != nil {
		return ew.err
	}

	switch r.View {
	case ViewProfile:
		return textProfile(ew, r, p)
	case ViewStack:
		return textStack(ew, r, p)
	default:
		return textSpectrum(ew, r, p)
	}
}

func textSpectrum(ew *errWriter, r Report, p palette) error {
	if r.Sweep != nil {
		ew.printf("%s %g-%g nm, %d samples, normal incidence, s-polarization\n\n",
			p.heading.Sprint("Sweep"), r.Sweep.Start, r.Sweep.Stop, r.Sweep.Samples)
	}
	tw := tabwriter.NewWriter(ew, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tPEAK R\tPEAK λ (nm)\tFWHM (nm)\tBAND (nm)\tMAX SIDELOBE\tMEAN R")
	for _, e := range r.Entries {
		if e.Curve == nil {
			continue
		}
		s := spectrum.Summarize(*e.Curve)
		band := "-"
		if s.FWHM > 0 {
			band = fmt.Sprintf("%.1f-%.1f", s.LowerEdge, s.UpperEdge)
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.1f\t%s\t%s\t%.4f\t%.4f\n",
			e.Label, s.PeakR, s.PeakWavelength, fwhm(s.FWHM), band, s.MaxSidelobe, s.MeanR)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return ew.err
}

func fwhm(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

func textProfile(ew *errWriter, r Report, p palette) error {
	ew.printf("\n%s\n", p.heading.Sprint("Refractive index profile"))
	if len(r.Entries) == 0 {
		return ew.err
	}
	tw := tabwriter.NewWriter(ew, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "DEPTH (nm)")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "\t%s", e.Label)
	}
	fmt.Fprintln(tw)
	first := r.Entries[0].Profile
	for i := range first.Depth {
		fmt.Fprintf(tw, "%.3f", first.Depth[i])
		for _, e := range r.Entries {
			if i < e.Profile.Len() {
				fmt.Fprintf(tw, "\t%.5f", e.Profile.Index[i])
			} else {
				fmt.Fprint(tw, "\t-")
			}
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return ew.err
}

func textStack(ew *errWriter, r Report, p palette) error {
	for _, e := range r.Entries {
		ew.printf("\n%s (%d media)\n", p.label.Sprint(e.Label), e.Stack.Len())
		tw := tabwriter.NewWriter(ew, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tINDEX\tTHICKNESS (nm)\tROLE")
		last := e.Stack.Len() - 1
		for i, n := range e.Stack.Indices {
			role := "film"
			switch i {
			case 0:
				role = "ambient"
			case last:
				role = "substrate"
			}
			th := "∞"
			if d := e.Stack.Thicknesses[i]; !math.IsInf(d, 0) {
				th = fmt.Sprintf("%.4f", d)
			}
			idx := fmt.Sprintf("%.5f", real(n))
			if imag(n) != 0 {
				idx = fmt.Sprintf("%.5f%+.5fi", real(n), imag(n))
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, idx, th, role)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return ew.err
}

// errWriter remembers the first write error so the report can be written
// without checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(e, format, a...)
}
