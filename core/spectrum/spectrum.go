// core/spectrum/spectrum.go
// Wavelength sweeps, reflectance curves, and the band metrics used to compare
// rugate designs (peak, FWHM, strongest sidelobe).
package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Default sweep of the rugate CLI.
const (
	DefaultStart   = 300.0 // nm
	DefaultStop    = 800.0 // nm
	DefaultSamples = 500
)

// Sweep is a fixed, ordered wavelength grid with both endpoints included.
type Sweep struct {
	Start   float64
	Stop    float64
	Samples int
}

// DefaultSweep returns 300..800 nm in 500 samples.
func DefaultSweep() Sweep {
	return Sweep{Start: DefaultStart, Stop: DefaultStop, Samples: DefaultSamples}
}

// Validate rejects empty or reversed grids and non-positive wavelengths.
func (s Sweep) Validate() error {
	switch {
	case s.Samples < 2:
		return fmt.Errorf("sweep: need at least 2 samples (got %d)", s.Samples)
	case !(s.Start > 0):
		return fmt.Errorf("sweep: start must be > 0 (got %g)", s.Start)
	case !(s.Stop > s.Start) || math.IsInf(s.Stop, 0):
		return fmt.Errorf("sweep: stop (%g) must be finite and greater than start (%g)", s.Stop, s.Start)
	}
	return nil
}

// Wavelengths materializes the grid.
func (s Sweep) Wavelengths() []float64 {
	if s.Samples < 2 {
		if s.Samples == 1 {
			return []float64{s.Start}
		}
		return nil
	}
	return floats.Span(make([]float64, s.Samples), s.Start, s.Stop)
}

// Curve is one reflectance spectrum.
type Curve struct {
	Label       string
	Wavelengths []float64
	R           []float64
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c.R) }

// Equal reports whether two curves agree sample by sample within tol.
func Equal(a, b Curve, tol float64) bool {
	return floats.EqualApprox(a.Wavelengths, b.Wavelengths, tol) && floats.EqualApprox(a.R, b.R, tol)
}

// Summary condenses a curve into band metrics.
type Summary struct {
	Label          string
	PeakR          float64
	PeakWavelength float64
	FWHM           float64 // nm; 0 when the band edges fall outside the sweep
	LowerEdge      float64 // nm, half-maximum crossing below the peak
	UpperEdge      float64 // nm, half-maximum crossing above the peak
	MaxSidelobe    float64 // strongest reflectance outside the main lobe
	MeanR          float64
}

// Summarize computes band metrics. The main lobe extends from the peak to the
// nearest local minimum on each side.
func Summarize(c Curve) Summary {
	s := Summary{Label: c.Label}
	n := len(c.R)
	if n == 0 || len(c.Wavelengths) != n {
		return s
	}
	pk := floats.MaxIdx(c.R)
	s.PeakR = c.R[pk]
	s.PeakWavelength = c.Wavelengths[pk]
	s.MeanR = stat.Mean(c.R, nil)

	half := s.PeakR / 2
	lo, okLo := crossing(c, pk, -1, half)
	hi, okHi := crossing(c, pk, +1, half)
	s.LowerEdge, s.UpperEdge = lo, hi
	if okLo && okHi {
		s.FWHM = hi - lo
	}

	left := pk
	for left > 0 && c.R[left-1] <= c.R[left] {
		left--
	}
	right := pk
	for right < n-1 && c.R[right+1] <= c.R[right] {
		right++
	}
	for i, r := range c.R {
		if (i < left || i > right) && r > s.MaxSidelobe {
			s.MaxSidelobe = r
		}
	}
	return s
}

// crossing walks from idx in direction dir until R drops below level and returns
// the linearly interpolated wavelength of the crossing.
func crossing(c Curve, idx, dir int, level float64) (float64, bool) {
	for i := idx; i+dir >= 0 && i+dir < len(c.R); i += dir {
		j := i + dir
		if c.R[j] < level {
			r0, r1 := c.R[i], c.R[j]
			w0, w1 := c.Wavelengths[i], c.Wavelengths[j]
			f := (r0 - level) / (r0 - r1)
			return w0 + f*(w1-w0), true
		}
	}
	if dir < 0 {
		return c.Wavelengths[0], false
	}
	return c.Wavelengths[len(c.Wavelengths)-1], false
}
