package schema

// ForwardingRule is the synthesized dispatch for one interface method:
// a match over the union's variants, one arm per declared variant.
type ForwardingRule struct {
	Method NormalizedMethod // the call shape every arm forwards to
	Arms   []MatchArm       // one arm per variant, in declaration order
}

// MatchArm destructures one variant and forwards the call to its payload
type MatchArm struct {
	Variant string      // variant name
	Binding string      // payload binding name inside the arm
	Attrs   []Attribute // variant tags re-emitted on the arm
}

// ConversionRule is the synthesized wrapped-type-to-union conversion for
// one variant. The conversion is total.
type ConversionRule struct {
	Variant string      // variant name
	Wrapped string      // verbatim wrapped type text
	Attrs   []Attribute // variant tags re-emitted on the conversion
}

// Expansion bundles everything synthesized for one invocation, ready for
// rendering: the paired declarations plus the dispatch and conversion rules
// derived from them.
type Expansion struct {
	Invocation  Invocation
	Forwarding  []ForwardingRule
	Conversions []ConversionRule
}
