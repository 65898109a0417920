// core/profile/profile.go
// Sampled refractive-index depth profiles for rugate films.
//
//   simple:    n(x) = n_avg + A·sin(2πx/L)
//   apodized:  n(x) = n_avg + A·sin(2πx/L)·exp(-(x-L/2)²/(2w²))
//
// Samples are evenly spaced, x_i = i·L/N for i in [0,N), so sample i sits at the
// top of interior layer i of the assembled stack.
package profile

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"rugate/core/design"
)

// Kind names a profile family.
type Kind string

const (
	KindSimple   Kind = "simple"
	KindApodized Kind = "apodized"
)

// Kinds lists the supported families in presentation order.
var Kinds = []Kind{KindSimple, KindApodized}

// Label is the human-readable legend entry for a kind.
func (k Kind) Label() string {
	switch k {
	case KindSimple:
		return "Simple Sinusoidal"
	case KindApodized:
		return "Apodized Sinusoidal"
	}
	return string(k)
}

// ParseKind accepts the names in Kinds, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown profile kind %q (expected simple or apodized)", s)
}

// Profile is an ordered (depth, index) sampling over a finite film.
type Profile struct {
	Kind  Kind
	Depth []float64 // nm, increasing
	Index []float64
}

// Len returns the number of samples.
func (p Profile) Len() int { return len(p.Index) }

// Depths returns n evenly spaced points in [0, film).
func Depths(film float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, film-film/float64(n))
}

// Envelope is the Gaussian apodization taper centred on film/2; it is 1 at the centre.
func Envelope(x, film, width float64) float64 {
	d := x - film/2
	return math.Exp(-(d * d) / (2 * width * width))
}

// Simple samples the unapodized sinusoid.
func Simple(avg, amp, film float64, n int) Profile {
	xs := Depths(film, n)
	idx := make([]float64, len(xs))
	for i, x := range xs {
		idx[i] = avg + amp*math.Sin(2*math.Pi*x/film)
	}
	return Profile{Kind: KindSimple, Depth: xs, Index: idx}
}

// Apodized samples the Gaussian-tapered sinusoid; widthFrac is the envelope width
// as a fraction of film.
func Apodized(avg, amp, film, widthFrac float64, n int) Profile {
	w := widthFrac * film
	xs := Depths(film, n)
	idx := make([]float64, len(xs))
	for i, x := range xs {
		idx[i] = avg + amp*math.Sin(2*math.Pi*x/film)*Envelope(x, film, w)
	}
	return Profile{Kind: KindApodized, Depth: xs, Index: idx}
}

// Generate builds the profile of the given kind for a derived design.
func Generate(kind Kind, d design.Derived) (Profile, error) {
	switch kind {
	case KindSimple:
		return Simple(d.AverageIndex, d.Amplitude, d.FilmThickness, d.NumLayers), nil
	case KindApodized:
		return Apodized(d.AverageIndex, d.Amplitude, d.FilmThickness, d.ApodizationWidth, d.NumLayers), nil
	default:
		return Profile{}, fmt.Errorf("unknown profile kind %q", kind)
	}
}
