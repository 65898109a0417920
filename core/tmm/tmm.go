// core/tmm/tmm.go
// Coherent transfer-matrix reflectance/transmittance of a plane-parallel multilayer.
//
// Conventions: indices n = n' + i·k (k >= 0 absorbs), lengths in the same unit as the
// vacuum wavelength (nm here), angle of incidence in radians measured in the first
// medium. The first and last media are semi-infinite (thickness +Inf).
//
// Steps:
//  1) Snell's law gives the (complex) propagation angle in every medium; the
//     forward-travelling branch is chosen in the outer media.
//  2) Per-interface Fresnel r/t for the chosen polarization.
//  3) M = (1/t01)[[1,r01],[r01,1]] · Π_i (1/t_i,i+1)·P(δ_i)·[[1,r],[r,1]],
//     with δ_i = k_z,i·d_i and P(δ) = diag(e^{-iδ}, e^{iδ}).
//  4) r = M10/M00, t = 1/M00, R = |r|², T = |t|²·Re(n_f cosθ_f)/Re(n_0 cosθ_0)
//     (conjugated cosines for p).
package tmm

import (
	"math"
	"math/cmplx"
)

// Polarization selects the field component.
type Polarization string

const (
	S Polarization = "s"
	P Polarization = "p"
)

// Request is one evaluation: a stack at a single vacuum wavelength.
type Request struct {
	Polarization Polarization
	Indices      []complex128
	Thicknesses  []float64 // first and last must be +Inf
	Angle        float64   // radians, in the first medium
	Wavelength   float64   // vacuum wavelength
}

// Result carries the power coefficients.
type Result struct {
	R float64 // reflectance
	T float64 // transmittance
}

// Evaluator computes a Result for a Request. Implementations return
// *InvalidInputError for non-physical requests.
type Evaluator interface {
	Evaluate(Request) (Result, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(Request) (Result, error)

func (f EvaluatorFunc) Evaluate(req Request) (Result, error) { return f(req) }

// Coherent is the default Evaluator.
type Coherent struct{}

// maxOpacity caps Im(δ) so e^{-iδ} cannot overflow in thick absorbing layers.
const maxOpacity = 35

type mat2 [2][2]complex128

func (a mat2) mul(b mat2) mat2 {
	return mat2{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

func (a mat2) scale(s complex128) mat2 {
	return mat2{{a[0][0] * s, a[0][1] * s}, {a[1][0] * s, a[1][1] * s}}
}

// Evaluate implements Evaluator.
func (Coherent) Evaluate(req Request) (Result, error) {
	if err := check(req); err != nil {
		return Result{}, err
	}
	n := req.Indices
	num := len(n)

	// 1) angles
	sin0 := n[0] * complex(math.Sin(req.Angle), 0)
	cosT := make([]complex128, num)
	for i := range n {
		th := cmplx.Asin(sin0 / n[i])
		if (i == 0 || i == num-1) && !forward(n[i], th) {
			th = complex(math.Pi, 0) - th
		}
		cosT[i] = cmplx.Cos(th)
	}

	// 2) phase thickness of each interior layer
	k0 := 2 * math.Pi / req.Wavelength
	delta := make([]complex128, num)
	for i := 1; i < num-1; i++ {
		d := n[i] * cosT[i] * complex(k0*req.Thicknesses[i], 0)
		if imag(d) > maxOpacity {
			d = complex(real(d), maxOpacity)
		}
		delta[i] = d
	}

	// 3) characteristic matrix
	r01, t01 := fresnel(req.Polarization, n[0], n[1], cosT[0], cosT[1])
	m := mat2{{1, r01}, {r01, 1}}.scale(1 / t01)
	for i := 1; i < num-1; i++ {
		r, t := fresnel(req.Polarization, n[i], n[i+1], cosT[i], cosT[i+1])
		prop := mat2{{cmplx.Exp(-1i * delta[i]), 0}, {0, cmplx.Exp(1i * delta[i])}}
		m = m.mul(prop.mul(mat2{{1, r}, {r, 1}}).scale(1 / t))
	}

	// 4) coefficients
	r := m[1][0] / m[0][0]
	t := 1 / m[0][0]
	return Result{
		R: sq(cmplx.Abs(r)),
		T: sq(cmplx.Abs(t)) * powerRatio(req.Polarization, n[0], n[num-1], cosT[0], cosT[num-1]),
	}, nil
}

func fresnel(pol Polarization, ni, nf, ci, cf complex128) (r, t complex128) {
	if pol == P {
		den := nf*ci + ni*cf
		return (nf*ci - ni*cf) / den, 2 * ni * ci / den
	}
	den := ni*ci + nf*cf
	return (ni*ci - nf*cf) / den, 2 * ni * ci / den
}

func powerRatio(pol Polarization, n0, nf, c0, cf complex128) float64 {
	if pol == P {
		return real(nf*cmplx.Conj(cf)) / real(n0*cmplx.Conj(c0))
	}
	return real(nf*cf) / real(n0*c0)
}

// forward reports whether angle th in a medium of index n describes a wave
// travelling (or decaying) away from the interface.
func forward(n, th complex128) bool {
	ncos := n * cmplx.Cos(th)
	if math.Abs(imag(ncos)) > 100*epsilon*math.Max(1, cmplx.Abs(ncos)) {
		return imag(ncos) > 0
	}
	return real(ncos) > 0
}

const epsilon = 2.220446049250313e-16

func sq(x float64) float64 { return x * x }
