package normalizer

import (
	"fmt"

	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/registry"
	"github.com/toyz/sumgen/internal/schema"
)

// Normalizer flattens invocations into dispatch-ready method lists.
// Supertrait methods fold in as if they were declared locally, one
// inheritance level deep.
type Normalizer struct {
	resolver registry.InterfaceResolver
}

// New creates a normalizer that resolves supertrait references against the
// given registry.
func New(resolver registry.InterfaceResolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Normalize produces the effective method list for one invocation: the
// interface's own methods in declaration order, then each supertrait's
// methods in bound order. All violations in the invocation are collected
// and returned together.
func (n *Normalizer) Normalize(inv schema.Invocation) ([]schema.NormalizedMethod, error) {
	iface := inv.Interface
	errs := &errors.ErrorList{}

	methods := make([]schema.NormalizedMethod, 0, len(iface.Methods))
	origins := make(map[string]string)

	merge := func(origin string, specs []schema.MethodSpec) {
		for i := range specs {
			m := &specs[i]
			if prev, dup := origins[m.Name]; dup {
				// Two methods with one name cannot share an impl
				// block, so diamond and shadowing cases are
				// rejected instead of silently picking one.
				errs.Add(errors.NewMalformedInterfaceError(iface.Name,
					fmt.Sprintf("method '%s' from '%s' collides with the declaration in '%s'", m.Name, origin, prev),
					methodLocation(m)))
				continue
			}
			origins[m.Name] = origin

			nm, err := n.normalizeMethod(iface.Name, origin, m)
			if err != nil {
				errs.Add(err)
				continue
			}
			methods = append(methods, nm)
		}
	}

	merge(iface.Name, iface.Methods)

	for _, name := range iface.Supertraits() {
		parent, ok := n.resolver.Resolve(name)
		if !ok {
			errs.Add(errors.NewUnknownSupertraitError(iface.Name, name, n.resolver.Names(), interfaceLocation(iface)))
			continue
		}
		if grandparents := parent.Supertraits(); len(grandparents) > 0 {
			errs.Add(errors.NewInheritanceDepthError(iface.Name, name, grandparents, interfaceLocation(iface)))
			continue
		}
		merge(parent.Name, parent.Methods)
	}

	if !errs.IsEmpty() {
		return nil, errs.Err()
	}
	return methods, nil
}

func (n *Normalizer) normalizeMethod(ifaceName, origin string, m *schema.MethodSpec) (schema.NormalizedMethod, error) {
	if m.Receiver == schema.ReceiverNone {
		return schema.NormalizedMethod{}, errors.NewReceiverlessMethodError(ifaceName, m.Name, methodLocation(m))
	}

	forwards := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		forwards = append(forwards, p.Name)
	}

	return schema.NormalizedMethod{
		Name:     m.Name,
		Receiver: m.Receiver,
		Params:   append([]schema.ParamSpec(nil), m.Params...),
		Forwards: forwards,
		Return:   m.Return,
		Async:    m.Async,
		Attrs:    append([]schema.Attribute(nil), m.Attrs...),
		Docs:     append([]string(nil), m.Docs...),
		Origin:   origin,
	}, nil
}

func methodLocation(m *schema.MethodSpec) errors.SourceLocation {
	return errors.SourceLocation{File: m.File, Line: m.Line, Column: m.Column}
}

func interfaceLocation(i *schema.InterfaceSpec) errors.SourceLocation {
	return errors.SourceLocation{File: i.File, Line: i.Line, Column: i.Column}
}
