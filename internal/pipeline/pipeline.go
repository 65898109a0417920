// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"rugate/core/spectrum"
	"rugate/core/tmm"
)

// Config controls the sweep.
type Config struct {
	Sweep        spectrum.Sweep
	Threads      int              // concurrent wavelengths (>=1); 1 keeps the sweep sequential
	Polarization tmm.Polarization // "" means s
	Angle        float64          // radians; 0 is normal incidence
	Log          logr.Logger
}

// ErrReflectanceRange marks an evaluator result outside [0,1].
var ErrReflectanceRange = errors.New("reflectance outside [0,1]")

// rangeTol absorbs rounding in R for lossless stacks.
const rangeTol = 1e-9

// SweepError is returned for the first wavelength of a variant that could not be
// evaluated. It carries the complete stack for diagnosis.
type SweepError struct {
	Variant     string
	Wavelength  float64
	Indices     []complex128
	Thicknesses []float64
	Err         error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("%s: reflectance at %g nm: %v", e.Variant, e.Wavelength, e.Err)
}

func (e *SweepError) Unwrap() error { return e.Err }

// Run evaluates every variant over cfg.Sweep, in order, and returns one curve per
// variant. It stops at the first failure.
func Run(ctx context.Context, cfg Config, variants []Variant, eval tmm.Evaluator) ([]spectrum.Curve, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Polarization == "" {
		cfg.Polarization = tmm.S
	}
	wls := cfg.Sweep.Wavelengths()
	curves := make([]spectrum.Curve, 0, len(variants))
	for _, v := range variants {
		cfg.Log.V(1).Info("sweeping variant", "variant", v.Label, "media", v.Stack.Len(), "samples", len(wls), "threads", cfg.Threads)
		c, err := Sweep(ctx, cfg, v, wls, eval)
		if err != nil {
			return nil, err
		}
		curves = append(curves, c)
	}
	return curves, nil
}

// Sweep evaluates one variant at each wavelength of wls.
func Sweep(ctx context.Context, cfg Config, v Variant, wls []float64, eval tmm.Evaluator) (spectrum.Curve, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	pol := cfg.Polarization
	if pol == "" {
		pol = tmm.S
	}
	r := make([]float64, len(wls))

	var once sync.Once
	fail := func(wl float64, cause error) error {
		st := v.Stack.Clone()
		serr := &SweepError{
			Variant:     v.Label,
			Wavelength:  wl,
			Indices:     st.Indices,
			Thicknesses: st.Thicknesses,
			Err:         cause,
		}
		once.Do(func() {
			cfg.Log.Error(cause, "reflectance evaluation failed",
				"variant", v.Label,
				"wavelength", wl,
				"n_list", serr.Indices,
				"d_list", serr.Thicknesses,
			)
		})
		return serr
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for i, wl := range wls {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := eval.Evaluate(tmm.Request{
				Polarization: pol,
				Indices:      v.Stack.Indices,
				Thicknesses:  v.Stack.Thicknesses,
				Angle:        cfg.Angle,
				Wavelength:   wl,
			})
			if err != nil {
				return fail(wl, err)
			}
			if math.IsNaN(res.R) || res.R < -rangeTol || res.R > 1+rangeTol {
				return fail(wl, fmt.Errorf("%w: R=%g", ErrReflectanceRange, res.R))
			}
			r[i] = math.Min(1, math.Max(0, res.R))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return spectrum.Curve{}, err
	}
	// Cancelled between launches without any goroutine observing it.
	if err := ctx.Err(); err != nil {
		return spectrum.Curve{}, err
	}
	return spectrum.Curve{Label: v.Label, Wavelengths: append([]float64(nil), wls...), R: r}, nil
}
