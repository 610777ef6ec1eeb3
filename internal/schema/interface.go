package schema

// InterfaceSpec represents one parsed interface declaration
type InterfaceSpec struct {
	Name       string       // interface name
	Visibility string       // verbatim visibility text, empty = private
	Bounds     []BoundSpec  // bound list after ':', in declaration order
	Methods    []MethodSpec // declared methods, order preserved
	Attrs      []Attribute  // outer attributes in declaration order
	Docs       []string     // /// doc lines, verbatim

	// Source location for error reporting
	File   string
	Line   int
	Column int
}

// Supertraits returns the names of the bounds that refer to declared
// interfaces, in declaration order. Marker and lifetime bounds are
// passthrough text and do not participate in method merging.
func (i *InterfaceSpec) Supertraits() []string {
	var names []string
	for _, b := range i.Bounds {
		if b.Kind == BoundSupertrait {
			names = append(names, b.Name)
		}
	}
	return names
}

// BoundKind classifies one entry of an interface's bound list
type BoundKind int

const (
	// BoundSupertrait is a plain interface name whose methods merge into
	// the declaring interface
	BoundSupertrait BoundKind = iota
	// BoundMarker is a path-qualified external bound, re-emitted verbatim
	BoundMarker
	// BoundLifetime is a lifetime bound, re-emitted verbatim
	BoundLifetime
)

// String returns a readable name for the bound kind
func (k BoundKind) String() string {
	switch k {
	case BoundSupertrait:
		return "supertrait"
	case BoundMarker:
		return "marker"
	case BoundLifetime:
		return "lifetime"
	default:
		return "unknown"
	}
}

// BoundSpec is one entry in an interface's bound list
type BoundSpec struct {
	Kind BoundKind // how the bound participates in generation
	Name string    // verbatim bound text, e.g. Base, std::fmt::Debug, 'static
}

// MethodSpec represents one method signature declared on an interface
type MethodSpec struct {
	Name     string       // method name
	Receiver ReceiverKind // how the method takes self
	Params   []ParamSpec  // declared parameters, receiver excluded
	Return   string       // verbatim return type text, empty = unit
	Body     string       // verbatim default body including braces, empty = none
	Attrs    []Attribute  // outer attributes in declaration order
	Docs     []string     // /// doc lines, verbatim
	Async    bool         // declared with the async marker

	// Source location for error reporting
	File   string
	Line   int
	Column int
}

// HasDefaultBody reports whether the method carries a default implementation
func (m MethodSpec) HasDefaultBody() bool {
	return m.Body != ""
}

// ParamSpec describes one declared parameter of an interface method
type ParamSpec struct {
	Name     string // parameter name as declared
	Type     string // verbatim type text, including any reference sigils
	Impl     bool   // type is an "impl <interface>" placeholder, forwarded opaquely
	ImplName string // bound interface name when Impl is set
}
