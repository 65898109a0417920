package tmm

import (
	"fmt"
	"math"
	"math/cmplx"
)

// InvalidInputError reports a request the solver refuses to evaluate.
type InvalidInputError struct {
	Field  string // "indices", "thicknesses", "angle", "wavelength", "polarization"
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("tmm: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, a ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, a...)}
}

func check(req Request) error {
	switch req.Polarization {
	case S, P:
	default:
		return invalid("polarization", "must be 's' or 'p' (got %q)", string(req.Polarization))
	}
	if !(req.Wavelength > 0) || math.IsInf(req.Wavelength, 0) {
		return invalid("wavelength", "must be a positive finite number (got %g)", req.Wavelength)
	}
	if math.IsNaN(req.Angle) || math.Abs(req.Angle) >= math.Pi/2 {
		return invalid("angle", "must be in (-pi/2, pi/2) (got %g)", req.Angle)
	}
	num := len(req.Indices)
	if num != len(req.Thicknesses) {
		return invalid("thicknesses", "length %d does not match %d indices", len(req.Thicknesses), num)
	}
	if num < 2 {
		return invalid("indices", "need at least 2 media (got %d)", num)
	}
	if !math.IsInf(req.Thicknesses[0], 1) || !math.IsInf(req.Thicknesses[num-1], 1) {
		return invalid("thicknesses", "first and last entries must be +Inf")
	}
	for i := 1; i < num-1; i++ {
		d := req.Thicknesses[i]
		if !(d > 0) || math.IsInf(d, 0) {
			return invalid("thicknesses", "layer %d must be finite and > 0 (got %g)", i, d)
		}
	}
	for i, n := range req.Indices {
		if cmplx.IsNaN(n) || cmplx.IsInf(n) || !(real(n) > 0) {
			return invalid("indices", "medium %d has non-physical index %v", i, n)
		}
		if real(n)*imag(n) < 0 {
			return invalid("indices", "medium %d has gain (index %v); only passive media are supported", i, n)
		}
	}
	if imag(req.Indices[0]) != 0 && req.Angle != 0 {
		return invalid("indices", "oblique incidence requires a lossless first medium")
	}
	return nil
}
