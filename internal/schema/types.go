package schema

// ReceiverKind classifies how a method takes its receiver
type ReceiverKind int

const (
	ReceiverNone   ReceiverKind = iota // associated method, no self
	ReceiverValue                      // self
	ReceiverRef                        // &self
	ReceiverMutRef                     // &mut self
)

// String returns the surface-syntax form of the receiver
func (k ReceiverKind) String() string {
	switch k {
	case ReceiverValue:
		return "self"
	case ReceiverRef:
		return "&self"
	case ReceiverMutRef:
		return "&mut self"
	default:
		return "none"
	}
}

// Attribute is one outer attribute captured verbatim, brackets included
type Attribute struct {
	Raw string // full source text, e.g. `#[cfg(feature = "fast")]`
	Cfg bool   // conditional-compilation tag (first token inside the brackets is cfg)
}

// CfgAttrs filters a captured attribute list down to conditional tags
func CfgAttrs(attrs []Attribute) []Attribute {
	var tags []Attribute
	for _, attr := range attrs {
		if attr.Cfg {
			tags = append(tags, attr)
		}
	}
	return tags
}
