package plotting

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testFigure() Figure {
	n := 50
	depth := make([]float64, n)
	simple := make([]float64, n)
	apod := make([]float64, n)
	for i := range depth {
		depth[i] = float64(i)
		simple[i] = 1.875 + 0.425*math.Sin(2*math.Pi*float64(i)/float64(n))
		apod[i] = 1.875 + 0.2*math.Sin(2*math.Pi*float64(i)/float64(n))
	}
	wl := []float64{300, 400, 500, 600, 700, 800}
	return Figure{
		Profiles: []Series{{Label: "Simple Sinusoidal", X: depth, Y: simple}, {Label: "Apodized Sinusoidal", X: depth, Y: apod}},
		Spectra: []Series{
			{Label: "Simple Sinusoidal", X: wl, Y: []float64{0.04, 0.1, 0.6, 0.1, 0.05, 0.04}},
			{Label: "Apodized Sinusoidal", X: wl, Y: []float64{0.04, 0.05, 0.3, 0.05, 0.04, 0.04}},
		},
		Width:  12,
		Height: 6,
	}
}

func TestSave_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rugate.png")
	if err := Save(path, testFigure()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("not a PNG: % x", b[:8])
	}
}

func TestRender_SVGHasTitlesAndLegend(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, ".SVG", testFigure()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "Refractive Index Profile", "Reflectance Spectra of Rugate Filters", "Distance (nm)", "Wavelength (nm)", "Apodized Sinusoidal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "fig.pdf"), testFigure()); err == nil || !strings.Contains(err.Error(), "unsupported plot type") {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fig.pdf")); !os.IsNotExist(err) {
		t.Fatal("no file should be created for an unsupported type")
	}
	if err := Save(filepath.Join(dir, "missing", "fig.png"), testFigure()); err == nil {
		t.Fatal("expected error for missing directory")
	}

	f := testFigure()
	f.Spectra[1].Y = f.Spectra[1].Y[:3]
	if err := Render(&bytes.Buffer{}, ".png", f); err == nil || !strings.Contains(err.Error(), "Apodized Sinusoidal") {
		t.Fatalf("expected length mismatch error, got %v", err)
	}
	f = testFigure()
	f.Profiles = nil
	if err := Render(&bytes.Buffer{}, ".png", f); err == nil {
		t.Fatal("expected error for empty panel")
	}
	f = testFigure()
	f.Width = 0
	if err := Render(&bytes.Buffer{}, ".png", f); err == nil {
		t.Fatal("expected error for zero width")
	}
}
