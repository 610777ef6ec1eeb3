package schema

// Invocation pairs one interface declaration with the union declaration
// that immediately follows it. One invocation produces one expansion.
type Invocation struct {
	Interface *InterfaceSpec
	Union     *UnionSpec
}

// SourceFile represents one parsed declaration file
type SourceFile struct {
	Path        string           // path the file was read from
	Interfaces  []*InterfaceSpec // every interface declaration, in order
	Invocations []Invocation     // paired declarations, in order
}

// GeneratedFile represents one rendered expansion ready to be written
type GeneratedFile struct {
	SourcePath string // declaration file the content was generated from
	Path       string // path where the generated file should be written
	Content    string // rendered source text
}
