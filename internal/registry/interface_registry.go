package registry

import (
	"sort"

	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/schema"
	"github.com/toyz/sumgen/internal/utils"
)

// InterfaceRegistry tracks every interface declared across the scanned
// files. Supertrait references resolve against it, so an interface declared
// in one file can be extended by an invocation in another.
type InterfaceRegistry struct {
	items *utils.BaseRegistry[string, *schema.InterfaceSpec]
}

// NewInterfaceRegistry creates an empty interface registry
func NewInterfaceRegistry() *InterfaceRegistry {
	return &InterfaceRegistry{
		items: utils.NewBaseRegistry[string, *schema.InterfaceSpec]("interface", "interface name", "interface spec"),
	}
}

// Register adds an interface to the registry. Interface names are a single
// global namespace: declaring the same name twice is an error no matter
// which files the declarations live in.
func (r *InterfaceRegistry) Register(spec *schema.InterfaceSpec) error {
	if spec == nil {
		return errors.New(errors.UnknownErrorCode, "interface spec cannot be nil")
	}

	return r.items.RegisterWithValidator(spec.Name, spec,
		func(name string, value *schema.InterfaceSpec, existing map[string]*schema.InterfaceSpec) error {
			if prior, exists := existing[name]; exists {
				return errors.NewDuplicateInterfaceError(
					name,
					errors.SourceLocation{File: value.File, Line: value.Line, Column: value.Column},
					errors.SourceLocation{File: prior.File, Line: prior.Line, Column: prior.Column},
				)
			}
			return nil
		})
}

// RegisterFile adds every interface declared in a parsed file. All
// duplicate conflicts in the file are reported together.
func (r *InterfaceRegistry) RegisterFile(file *schema.SourceFile) error {
	errs := &errors.ErrorList{}
	for _, spec := range file.Interfaces {
		if err := r.Register(spec); err != nil {
			errs.Add(err)
		}
	}
	return errs.Err()
}

// Resolve retrieves an interface by name
func (r *InterfaceRegistry) Resolve(name string) (*schema.InterfaceSpec, bool) {
	return r.items.Get(name)
}

// Has checks whether an interface name is registered
func (r *InterfaceRegistry) Has(name string) bool {
	return r.items.Has(name)
}

// Names returns all registered interface names in sorted order so
// diagnostics and suggestions come out stable run to run
func (r *InterfaceRegistry) Names() []string {
	names := r.items.List()
	sort.Strings(names)
	return names
}

// Size returns the number of registered interfaces
func (r *InterfaceRegistry) Size() int {
	return r.items.Size()
}

// Clear removes all registered interfaces
func (r *InterfaceRegistry) Clear() {
	r.items.Clear()
}
