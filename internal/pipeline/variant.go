// internal/pipeline/variant.go
package pipeline

import (
	"fmt"

	"rugate/core/design"
	"rugate/core/profile"
	"rugate/core/stack"
)

// Variant is one design under comparison: its sampled profile and the stack
// built from it.
type Variant struct {
	Kind    profile.Kind
	Label   string
	Profile profile.Profile
	Stack   stack.Stack
}

// Prepare generates the profile of every kind and assembles and validates its
// stack. Each variant owns its slices; nothing is shared between variants.
func Prepare(d design.Derived, kinds ...profile.Kind) ([]Variant, error) {
	if len(kinds) == 0 {
		kinds = profile.Kinds
	}
	out := make([]Variant, 0, len(kinds))
	for _, k := range kinds {
		p, err := profile.Generate(k, d)
		if err != nil {
			return nil, err
		}
		if p.Len() != d.NumLayers {
			return nil, fmt.Errorf("%s profile has %d samples, want %d", k, p.Len(), d.NumLayers)
		}
		st := stack.Assemble(p.Index, d.LayerThickness, d.AmbientIndex, d.SubstrateIndex)
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out = append(out, Variant{
			Kind:    k,
			Label:   k.Label(),
			Profile: p,
			Stack:   st,
		})
	}
	return out, nil
}
