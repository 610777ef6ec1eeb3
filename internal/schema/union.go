package schema

// UnionSpec represents one parsed tagged-union declaration
type UnionSpec struct {
	Name       string        // union name
	Visibility string        // verbatim visibility text, empty = private
	Variants   []VariantSpec // declared variants, order preserved
	Attrs      []Attribute   // outer attributes in declaration order
	Docs       []string      // /// doc lines, verbatim

	// Source location for error reporting
	File   string
	Line   int
	Column int
}

// VariantSpec represents one variant of a union, wrapping exactly one type
type VariantSpec struct {
	Name  string      // variant name
	Type  string      // verbatim wrapped type text
	Attrs []Attribute // outer attributes in declaration order
	Docs  []string    // /// doc lines, verbatim

	// Source location for error reporting
	File   string
	Line   int
	Column int
}
