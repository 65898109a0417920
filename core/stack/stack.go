// core/stack/stack.go
// Layered-medium model: a semi-infinite ambient, N finite film layers, and a
// semi-infinite substrate. Outer media carry +Inf thickness.
package stack

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Stack is the ordered (index, thickness) description of a multilayer.
// len(Indices) == len(Thicknesses) always holds for stacks built by Assemble.
type Stack struct {
	Indices     []complex128
	Thicknesses []float64 // nm; first and last are +Inf
}

// Len returns the number of media, including ambient and substrate.
func (s Stack) Len() int { return len(s.Indices) }

// Layers returns the number of finite film layers.
func (s Stack) Layers() int {
	if len(s.Indices) < 2 {
		return 0
	}
	return len(s.Indices) - 2
}

// Assemble brackets a sampled profile by ambient and substrate media.
// The profile slice is copied, never retained or modified.
func Assemble(profile []float64, layerThickness, ambient, substrate float64) Stack {
	n := len(profile)
	s := Stack{
		Indices:     make([]complex128, 0, n+2),
		Thicknesses: make([]float64, 0, n+2),
	}
	s.Indices = append(s.Indices, complex(ambient, 0))
	s.Thicknesses = append(s.Thicknesses, math.Inf(1))
	for _, v := range profile {
		s.Indices = append(s.Indices, complex(v, 0))
		s.Thicknesses = append(s.Thicknesses, layerThickness)
	}
	s.Indices = append(s.Indices, complex(substrate, 0))
	s.Thicknesses = append(s.Thicknesses, math.Inf(1))
	return s
}

// Clone returns a deep copy.
func (s Stack) Clone() Stack {
	return Stack{
		Indices:     append([]complex128(nil), s.Indices...),
		Thicknesses: append([]float64(nil), s.Thicknesses...),
	}
}

// RealIndices returns the real parts of the indices, for display.
func (s Stack) RealIndices() []float64 {
	out := make([]float64, len(s.Indices))
	for i, n := range s.Indices {
		out[i] = real(n)
	}
	return out
}

// Validate checks the structural invariants of a stack.
func (s Stack) Validate() error {
	if len(s.Indices) != len(s.Thicknesses) {
		return fmt.Errorf("stack: %d indices but %d thicknesses", len(s.Indices), len(s.Thicknesses))
	}
	if len(s.Indices) < 2 {
		return fmt.Errorf("stack: need at least ambient and substrate, got %d media", len(s.Indices))
	}
	last := len(s.Indices) - 1
	if !math.IsInf(s.Thicknesses[0], 1) || !math.IsInf(s.Thicknesses[last], 1) {
		return fmt.Errorf("stack: outer media must have infinite thickness")
	}
	for _, i := range []int{0, last} {
		n := s.Indices[i]
		if imag(n) != 0 || real(n) < 0 || cmplx.IsNaN(n) {
			return fmt.Errorf("stack: outer medium %d must have a real, non-negative index (got %v)", i, n)
		}
	}
	for i := 1; i < last; i++ {
		d := s.Thicknesses[i]
		if !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("stack: layer %d thickness must be finite and > 0 (got %g)", i, d)
		}
	}
	return nil
}
