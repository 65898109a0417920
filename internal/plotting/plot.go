// internal/plotting/plot.go
// Package plotting renders the side-by-side comparison figure: index profiles
// on the left, reflectance spectra on the right.
package plotting

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// DPI of raster output.
const DPI = 100

// Series is one labelled curve.
type Series struct {
	Label string
	X, Y  []float64
}

// Figure holds both panels. Width and Height are in inches.
type Figure struct {
	Profiles []Series
	Spectra  []Series
	Width    float64
	Height   float64
}

// Extensions lists the file types Save understands.
var Extensions = []string{".png", ".svg"}

func (s Series) xys() (plotter.XYs, error) {
	if len(s.X) != len(s.Y) {
		return nil, errors.Errorf("series %q: %d x values, %d y values", s.Label, len(s.X), len(s.Y))
	}
	if len(s.X) == 0 {
		return nil, errors.Errorf("series %q is empty", s.Label)
	}
	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i].X, pts[i].Y = s.X[i], s.Y[i]
	}
	return pts, nil
}

func panel(title, xlabel, ylabel string, series []Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.Errorf("%s: no series", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	for i, s := range series {
		pts, err := s.xys()
		if err != nil {
			return nil, err
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "series %q", s.Label)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(s.Label, l)
	}
	return p, nil
}

// canvas returns a drawing surface for the output type named by ext.
func canvas(ext string, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(DPI))}, nil
	case ".svg":
		return vgsvg.New(w, h), nil
	default:
		return nil, errors.Errorf("unsupported plot type %q (want one of %s)", ext, strings.Join(Extensions, ", "))
	}
}

// Render draws the figure and writes it to w in the format named by ext
// (".png" or ".svg").
func Render(w io.Writer, ext string, f Figure) error {
	if f.Width <= 0 || f.Height <= 0 {
		return errors.Errorf("invalid figure size %gx%g in", f.Width, f.Height)
	}
	left, err := panel("Refractive Index Profile", "Distance (nm)", "Refractive Index", f.Profiles)
	if err != nil {
		return err
	}
	right, err := panel("Reflectance Spectra of Rugate Filters", "Wavelength (nm)", "Reflectance", f.Spectra)
	if err != nil {
		return err
	}

	c, err := canvas(ext, vg.Length(f.Width)*vg.Inch, vg.Length(f.Height)*vg.Inch)
	if err != nil {
		return err
	}
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadX:   vg.Inch / 4,
		PadTop: vg.Inch / 8, PadBottom: vg.Inch / 8,
		PadLeft: vg.Inch / 8, PadRight: vg.Inch / 8,
	}
	plots := [][]*plot.Plot{{left, right}}
	cells := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(cells[0][j])
	}
	if _, err := c.WriteTo(w); err != nil {
		return errors.Wrap(err, "encode figure")
	}
	return nil
}

// Save renders the figure to path; the extension picks the format.
func Save(path string, f Figure) (err error) {
	ext := filepath.Ext(path)
	if _, err := canvas(ext, vg.Inch, vg.Inch); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create plot file")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close plot file")
		}
	}()
	return Render(out, ext, f)
}
