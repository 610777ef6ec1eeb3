package registry

import "github.com/toyz/sumgen/internal/schema"

// InterfaceResolver is the read side of the interface registry, used by the
// normalizer to resolve supertrait references across file boundaries
type InterfaceResolver interface {
	Resolve(name string) (*schema.InterfaceSpec, bool)
	Has(name string) bool
	Names() []string
}
