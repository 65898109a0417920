package writers

import (
	"math"

	"rugate/core/design"
	"rugate/core/profile"
	"rugate/core/spectrum"
	"rugate/core/stack"
	"rugate/pkg/api"
)

// View selects which part of a run a report presents.
type View string

const (
	ViewSpectrum View = "spectrum" // reflectance curves and band summary
	ViewProfile  View = "profile"  // sampled index profiles
	ViewStack    View = "stack"    // assembled layer stacks
)

// Entry is one variant of the comparison. Curve is nil when no sweep ran.
type Entry struct {
	Kind    profile.Kind
	Label   string
	Profile profile.Profile
	Stack   stack.Stack
	Curve   *spectrum.Curve
}

// Report is everything a writer may present.
type Report struct {
	View    View
	Design  design.Derived
	Sweep   *spectrum.Sweep
	Entries []Entry
}

// ToAPI converts a report to the stable wire schema (v1). Only the parts of the
// selected view are filled.
func ToAPI(r Report) api.ReportV1 {
	d := r.Design
	out := api.ReportV1{
		Design: api.DesignV1{
			TargetWavelength: d.TargetWavelength,
			NumLayers:        d.NumLayers,
			HighIndex:        d.HighIndex,
			LowIndex:         d.LowIndex,
			SubstrateIndex:   d.SubstrateIndex,
			AmbientIndex:     d.AmbientIndex,
			ApodizationWidth: d.ApodizationWidth,
			ThicknessMargin:  d.ThicknessMargin,
			AverageIndex:     d.AverageIndex,
			Amplitude:        d.Amplitude,
			FilmThickness:    d.FilmThickness,
			LayerThickness:   d.LayerThickness,
		},
		Variants: make([]api.VariantV1, 0, len(r.Entries)),
	}
	if r.Sweep != nil && r.View == ViewSpectrum {
		out.Sweep = &api.SweepV1{Start: r.Sweep.Start, Stop: r.Sweep.Stop, Samples: r.Sweep.Samples}
	}
	for _, e := range r.Entries {
		v := api.VariantV1{Kind: string(e.Kind), Label: e.Label}
		switch r.View {
		case ViewProfile:
			v.Profile = profilePoints(e, "")
		case ViewStack:
			v.Layers = layers(e, "")
		default:
			if e.Curve != nil {
				v.Reflectance = samples(e, "")
				s := toAPISummary(spectrum.Summarize(*e.Curve))
				v.Summary = &s
			}
		}
		out.Variants = append(out.Variants, v)
	}
	return out
}

func profilePoints(e Entry, tag string) []api.ProfilePointV1 {
	out := make([]api.ProfilePointV1, len(e.Profile.Index))
	for i := range e.Profile.Index {
		out[i] = api.ProfilePointV1{Variant: tag, Depth: e.Profile.Depth[i], Index: e.Profile.Index[i]}
	}
	return out
}

func layers(e Entry, tag string) []api.LayerV1 {
	out := make([]api.LayerV1, len(e.Stack.Indices))
	for i, n := range e.Stack.Indices {
		l := api.LayerV1{Variant: tag, Position: i, Index: real(n), Extinction: imag(n)}
		if d := e.Stack.Thicknesses[i]; math.IsInf(d, 0) {
			l.SemiInfinite = true
		} else {
			l.Thickness = &d
		}
		out[i] = l
	}
	return out
}

func samples(e Entry, tag string) []api.SampleV1 {
	if e.Curve == nil {
		return nil
	}
	out := make([]api.SampleV1, len(e.Curve.R))
	for i := range e.Curve.R {
		out[i] = api.SampleV1{Variant: tag, Wavelength: e.Curve.Wavelengths[i], R: e.Curve.R[i]}
	}
	return out
}

func toAPISummary(s spectrum.Summary) api.SummaryV1 {
	return api.SummaryV1{
		PeakR:          s.PeakR,
		PeakWavelength: s.PeakWavelength,
		FWHM:           s.FWHM,
		LowerEdge:      s.LowerEdge,
		UpperEdge:      s.UpperEdge,
		MaxSidelobe:    s.MaxSidelobe,
		MeanR:          s.MeanR,
	}
}
