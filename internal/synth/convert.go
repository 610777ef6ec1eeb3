package synth

import (
	"fmt"

	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/schema"
)

// Warning is a non-fatal finding from synthesis. Warnings never change the
// artifact set; the caller decides how to surface them.
type Warning struct {
	Message  string
	Location errors.SourceLocation
}

// Conversions produces one conversion rule per declared variant, in
// declaration order. Each conversion carries its variant's attributes.
//
// Two variants wrapping the same type both get a conversion; the pair is
// reported as a warning because type-directed conversion between them is
// ambiguous and the downstream build will reject the duplicate.
func (s *Synthesizer) Conversions(union *schema.UnionSpec) ([]schema.ConversionRule, []Warning) {
	rules := make([]schema.ConversionRule, 0, len(union.Variants))
	seen := make(map[string]string, len(union.Variants))
	var warnings []Warning

	for _, variant := range union.Variants {
		rules = append(rules, schema.ConversionRule{
			Variant: variant.Name,
			Wrapped: variant.Type,
			Attrs:   append([]schema.Attribute(nil), variant.Attrs...),
		})

		if prior, ok := seen[variant.Type]; ok {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("union '%s': variants '%s' and '%s' both wrap '%s', so the generated conversions overlap",
					union.Name, prior, variant.Name, variant.Type),
				Location: errors.SourceLocation{File: variant.File, Line: variant.Line, Column: variant.Column},
			})
			continue
		}
		seen[variant.Type] = variant.Name
	}

	return rules, warnings
}
