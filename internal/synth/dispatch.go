// Package synth builds the generated-artifact rules for one invocation:
// a forwarding dispatch per effective interface method and a wrapped-type
// conversion per variant. Rules are pure data consumed by the emitter;
// synthesis never renders text itself.
package synth

import (
	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/schema"
)

// payloadBinding is the name every match arm binds the variant payload to.
const payloadBinding = "v"

// Synthesizer turns normalized methods and union declarations into
// dispatch and conversion rules.
type Synthesizer struct{}

// New creates a new synthesizer instance
func New() *Synthesizer {
	return &Synthesizer{}
}

// Dispatch produces one forwarding rule per normalized method, in effective
// order. Every rule matches over the union's full declared variant set; each
// arm keeps its variant's attributes, so a conditionally excluded variant
// drops out of the downstream build together with its arm.
func (s *Synthesizer) Dispatch(union *schema.UnionSpec, methods []schema.NormalizedMethod) ([]schema.ForwardingRule, error) {
	rules := make([]schema.ForwardingRule, 0, len(methods))
	for _, method := range methods {
		if method.Receiver == schema.ReceiverNone {
			// Normalization guarantees a receiver; a miss here is an
			// upstream bug, not a declaration error.
			return nil, errors.NewUnresolvedReceiverError(method.Origin, method.Name)
		}

		arms := make([]schema.MatchArm, 0, len(union.Variants))
		for _, variant := range union.Variants {
			arms = append(arms, schema.MatchArm{
				Variant: variant.Name,
				Binding: payloadBinding,
				Attrs:   append([]schema.Attribute(nil), variant.Attrs...),
			})
		}

		rules = append(rules, schema.ForwardingRule{
			Method: method,
			Arms:   arms,
		})
	}
	return rules, nil
}
