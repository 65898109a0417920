// core/design/design.go
// Design parameters for a rugate film and the quantities derived from them.
// Units: lengths in nm, indices dimensionless.
//
// FilmThickness follows the quarter-wave estimate against the substrate,
//   film = λ0 / (4·sqrt(n_avg·n_sub)) · (1 + margin)
// and every interior layer of the discretized film has thickness film/N.
//
// This package has no app/output deps.
package design

import (
	"errors"
	"fmt"
	"math"
)

// Defaults used by the rugate CLI.
const (
	DefaultTargetWavelength = 532.0 // nm
	DefaultNumLayers        = 20
	DefaultHighIndex        = 2.3  // e.g. TiO2
	DefaultLowIndex         = 1.45 // e.g. SiO2
	DefaultSubstrateIndex   = 1.5  // glass
	DefaultAmbientIndex     = 1.0  // air
	DefaultApodization      = 0.2  // width as a fraction of the film thickness
	DefaultThicknessMargin  = 0.1
)

// Params is the immutable scalar configuration of a design.
type Params struct {
	TargetWavelength float64 // nm
	NumLayers        int
	HighIndex        float64
	LowIndex         float64
	SubstrateIndex   float64
	AmbientIndex     float64
	ApodizationWidth float64 // fraction of FilmThickness, (0,1]
	ThicknessMargin  float64 // relative margin on the quarter-wave film thickness
}

// Default returns the reference design (532 nm, 20 layers, TiO2/SiO2 on glass).
func Default() Params {
	return Params{
		TargetWavelength: DefaultTargetWavelength,
		NumLayers:        DefaultNumLayers,
		HighIndex:        DefaultHighIndex,
		LowIndex:         DefaultLowIndex,
		SubstrateIndex:   DefaultSubstrateIndex,
		AmbientIndex:     DefaultAmbientIndex,
		ApodizationWidth: DefaultApodization,
		ThicknessMargin:  DefaultThicknessMargin,
	}
}

// Derived holds the values computed from Params.
type Derived struct {
	Params

	AverageIndex     float64
	Amplitude        float64
	FilmThickness    float64 // nm
	LayerThickness   float64 // nm
	ApodizationSigma float64 // nm; Gaussian width of the apodization envelope
}

// Validate reports the first parameter that cannot produce a physical design.
// Every real-valued parameter must be finite; NaN never passes.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"target wavelength", p.TargetWavelength},
		{"high index", p.HighIndex},
		{"low index", p.LowIndex},
		{"substrate index", p.SubstrateIndex},
		{"ambient index", p.AmbientIndex},
		{"apodization width", p.ApodizationWidth},
		{"thickness margin", p.ThicknessMargin},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("design: %s must be a finite number (got %g)", f.name, f.v)
		}
	}
	switch {
	case p.NumLayers < 1:
		return fmt.Errorf("design: layers must be >= 1 (got %d)", p.NumLayers)
	case !(p.TargetWavelength > 0):
		return fmt.Errorf("design: target wavelength must be > 0 (got %g)", p.TargetWavelength)
	case !(p.LowIndex > 0):
		return fmt.Errorf("design: low index must be > 0 (got %g)", p.LowIndex)
	case p.HighIndex < p.LowIndex:
		return fmt.Errorf("design: high index %g is below low index %g", p.HighIndex, p.LowIndex)
	case !(p.SubstrateIndex > 0):
		return fmt.Errorf("design: substrate index must be > 0 (got %g)", p.SubstrateIndex)
	case !(p.AmbientIndex > 0):
		return fmt.Errorf("design: ambient index must be > 0 (got %g)", p.AmbientIndex)
	case !(p.ApodizationWidth > 0) || p.ApodizationWidth > 1:
		return fmt.Errorf("design: apodization width must be in (0,1] (got %g)", p.ApodizationWidth)
	case p.ThicknessMargin <= -1:
		return errors.New("design: thickness margin must be > -1")
	}
	return nil
}

// Derive computes the average index, modulation amplitude and thicknesses.
// It does not validate; callers that accept user input call Validate first.
func (p Params) Derive() Derived {
	avg := (p.HighIndex + p.LowIndex) / 2
	amp := (p.HighIndex - p.LowIndex) / 2
	film := p.TargetWavelength / (4 * math.Sqrt(avg*p.SubstrateIndex)) * (1 + p.ThicknessMargin)
	d := Derived{
		Params:           p,
		AverageIndex:     avg,
		Amplitude:        amp,
		FilmThickness:    film,
		ApodizationSigma: p.ApodizationWidth * film,
	}
	if p.NumLayers > 0 {
		d.LayerThickness = film / float64(p.NumLayers)
	}
	return d
}
