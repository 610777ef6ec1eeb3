// Package sumgen expands tagged-union declaration files: for every
// interface/union pair it synthesizes the forwarding implementation of the
// interface over the union's variants, plus one conversion per wrapped type.
//
// The package is the embeddable entry point. Programs that want file
// scanning, config discovery and watch mode should use the sumgen binary
// instead.
package sumgen

import (
	"github.com/toyz/sumgen/internal/emitter"
	"github.com/toyz/sumgen/internal/normalizer"
	"github.com/toyz/sumgen/internal/parser"
	"github.com/toyz/sumgen/internal/registry"
	"github.com/toyz/sumgen/internal/schema"
	"github.com/toyz/sumgen/internal/synth"
)

// Version is the sumgen release version, comparable with min_version
// constraints in sumgen.yaml files.
const Version = "v0.2.0"

// Result holds one expanded declaration file.
type Result struct {
	// Path is the conventional output path derived from the source path.
	Path string

	// Content is the rendered output text.
	Content string

	// Warnings lists non-fatal findings raised during synthesis, one
	// "file:line: message" entry each.
	Warnings []string
}

// Expander runs the full expansion pipeline over single files.
type Expander struct {
	emitter *emitter.Emitter
}

// New creates an expander whose output starts with the generated-code banner.
func New() *Expander {
	return &Expander{emitter: emitter.New()}
}

// NewWithoutHeader creates an expander that omits the generated-code banner.
func NewWithoutHeader() *Expander {
	return &Expander{emitter: emitter.NewWithoutHeader()}
}

// Expand parses declaration source text and returns its expansion. The
// filename is used for error positions and for deriving Result.Path.
func (e *Expander) Expand(filename, source string) (*Result, error) {
	file, err := parser.New().ParseSource(filename, source)
	if err != nil {
		return nil, err
	}
	return e.expand(file)
}

// ExpandFile reads and expands the declaration file at path. Nothing is
// written to disk; the caller decides what to do with the result.
func (e *Expander) ExpandFile(path string) (*Result, error) {
	file, err := parser.New().ParseFile(path)
	if err != nil {
		return nil, err
	}
	return e.expand(file)
}

func (e *Expander) expand(file *schema.SourceFile) (*Result, error) {
	reg := registry.NewInterfaceRegistry()
	if err := reg.RegisterFile(file); err != nil {
		return nil, err
	}

	norm := normalizer.New(reg)
	syn := synth.New()

	var warnings []string
	expansions := make([]schema.Expansion, 0, len(file.Invocations))
	for _, inv := range file.Invocations {
		methods, err := norm.Normalize(inv)
		if err != nil {
			return nil, err
		}

		forwarding, err := syn.Dispatch(inv.Union, methods)
		if err != nil {
			return nil, err
		}

		conversions, warns := syn.Conversions(inv.Union)
		for _, w := range warns {
			warnings = append(warnings, w.Location.String()+": "+w.Message)
		}

		expansions = append(expansions, schema.Expansion{
			Invocation:  inv,
			Forwarding:  forwarding,
			Conversions: conversions,
		})
	}

	generated, err := e.emitter.RenderFile(file.Path, expansions)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:     generated.Path,
		Content:  generated.Content,
		Warnings: warnings,
	}, nil
}

// Expand expands declaration source text with the default settings.
func Expand(filename, source string) (*Result, error) {
	return New().Expand(filename, source)
}

// ExpandFile expands the declaration file at path with the default settings.
func ExpandFile(path string) (*Result, error) {
	return New().ExpandFile(path)
}
