package synth

import (
	"strings"
	"testing"

	"github.com/toyz/sumgen/internal/schema"
)

func TestConversionsPerVariant(t *testing.T) {
	rules, warnings := New().Conversions(testUnion())
	if len(rules) != 3 {
		t.Fatalf("Expected 3 conversions, got %d", len(rules))
	}
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %+v", warnings)
	}

	if rules[0].Variant != "Rect" || rules[0].Wrapped != "Rect" {
		t.Errorf("Unexpected first conversion: %+v", rules[0])
	}
	if rules[2].Variant != "Cube" {
		t.Errorf("Variant order lost: %+v", rules)
	}
	if len(rules[2].Attrs) != 1 || !rules[2].Attrs[0].Cfg {
		t.Errorf("Cube conversion should carry its variant tag: %+v", rules[2].Attrs)
	}
}

func TestConversionsDuplicateWrappedType(t *testing.T) {
	union := &schema.UnionSpec{
		Name: "Message",
		Variants: []schema.VariantSpec{
			{Name: "Request", Type: "Envelope", File: "wire.sum", Line: 10},
			{Name: "Response", Type: "Envelope", File: "wire.sum", Line: 11},
		},
	}

	rules, warnings := New().Conversions(union)
	if len(rules) != 2 {
		t.Fatalf("Both conversions must be generated, got %d", len(rules))
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}

	w := warnings[0]
	for _, want := range []string{"Message", "Request", "Response", "Envelope"} {
		if !strings.Contains(w.Message, want) {
			t.Errorf("Warning should mention %q: %s", want, w.Message)
		}
	}
	if w.Location.File != "wire.sum" || w.Location.Line != 11 {
		t.Errorf("Warning should point at the later variant: %+v", w.Location)
	}
}
