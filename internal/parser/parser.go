package parser

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/schema"
)

// Parser parses declaration files into schema values. It is safe for
// concurrent use.
type Parser struct {
	parser *participle.Parser[fileNode]
}

// New creates a parser for declaration files.
func New() *Parser {
	return &Parser{
		parser: participle.MustBuild[fileNode](
			participle.Lexer(declLexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(2),
		),
	}
}

// ParseFile reads and parses a declaration file from disk.
func (p *Parser) ParseFile(path string) (*schema.SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return p.ParseSource(path, string(data))
}

// ParseSource parses declaration source text. The filename is only used for
// error locations. All schema violations in the file are collected and
// returned together rather than stopping at the first one.
func (p *Parser) ParseSource(filename, source string) (*schema.SourceFile, error) {
	node, err := p.parser.ParseString(filename, source)
	if err != nil {
		return nil, syntaxError(filename, err)
	}
	return p.build(filename, source, node)
}

func syntaxError(filename string, err error) error {
	var perr participle.Error
	if stderrors.As(err, &perr) {
		pos := perr.Position()
		return errors.NewSyntaxError(perr.Message(), errors.SourceLocation{
			File:   filename,
			Line:   pos.Line,
			Column: pos.Column,
		})
	}
	return errors.NewSyntaxError(err.Error(), errors.SourceLocation{File: filename})
}

func (p *Parser) build(filename, source string, file *fileNode) (*schema.SourceFile, error) {
	out := &schema.SourceFile{Path: filename}
	errs := &errors.ErrorList{}

	// A union pairs with the interface declared immediately before it.
	// Interfaces that never pair still matter: they feed the supertrait
	// registry.
	var pending *schema.InterfaceSpec
	var pendingFailed bool
	for i := range file.Decls {
		decl := &file.Decls[i]
		switch {
		case decl.Body.Interface != nil:
			spec := p.buildInterface(filename, source, decl, errs)
			if spec == nil {
				pending, pendingFailed = nil, true
				continue
			}
			out.Interfaces = append(out.Interfaces, spec)
			pending, pendingFailed = spec, false

		case decl.Body.Union != nil:
			spec := p.buildUnion(filename, source, decl, errs)
			if spec == nil {
				pending, pendingFailed = nil, false
				continue
			}
			if pending == nil {
				// Suppress the pairing error when the preceding
				// interface already failed; one error is enough.
				if !pendingFailed {
					errs.Add(errors.NewSyntaxError(
						fmt.Sprintf("union '%s' is not immediately preceded by an interface declaration", spec.Name),
						location(filename, decl.Pos)))
				}
				pendingFailed = false
				continue
			}
			out.Invocations = append(out.Invocations, schema.Invocation{
				Interface: pending,
				Union:     spec,
			})
			pending, pendingFailed = nil, false
		}
	}

	if !errs.IsEmpty() {
		return nil, errs.Err()
	}
	return out, nil
}

func (p *Parser) buildInterface(filename, source string, decl *declNode, errs *errors.ErrorList) *schema.InterfaceSpec {
	body := decl.Body.Interface
	spec := &schema.InterfaceSpec{
		Name:       body.Name,
		Visibility: visRaw(source, decl.Vis),
		Docs:       append([]string(nil), decl.Docs...),
		Attrs:      buildAttrs(source, decl.Attrs),
		File:       filename,
		Line:       decl.Pos.Line,
		Column:     decl.Pos.Column,
	}

	// Plain names are supertrait references and must resolve later;
	// path-qualified bounds and lifetimes are passthrough text.
	before := errs.Count()
	var lifetime string
	for i := range body.Bounds {
		bound := &body.Bounds[i]
		switch {
		case bound.Lifetime != "":
			if lifetime != "" {
				errs.Add(errors.NewMalformedInterfaceError(body.Name,
					fmt.Sprintf("more than one lifetime bound (%s and %s)", lifetime, bound.Lifetime),
					location(filename, bound.Pos)))
				continue
			}
			lifetime = bound.Lifetime
			spec.Bounds = append(spec.Bounds, schema.BoundSpec{Kind: schema.BoundLifetime, Name: bound.Lifetime})
		case len(bound.Path) > 1:
			spec.Bounds = append(spec.Bounds, schema.BoundSpec{Kind: schema.BoundMarker, Name: strings.Join(bound.Path, "::")})
		default:
			spec.Bounds = append(spec.Bounds, schema.BoundSpec{Kind: schema.BoundSupertrait, Name: bound.Path[0]})
		}
	}

	for i := range body.Methods {
		m := p.buildMethod(filename, source, body.Name, &body.Methods[i], errs)
		if m != nil {
			spec.Methods = append(spec.Methods, *m)
		}
	}

	if errs.Count() > before {
		return nil
	}
	return spec
}

func (p *Parser) buildMethod(filename, source, ifaceName string, node *methodNode, errs *errors.ErrorList) *schema.MethodSpec {
	m := &schema.MethodSpec{
		Name:   node.Name,
		Async:  node.Async,
		Docs:   append([]string(nil), node.Docs...),
		Attrs:  buildAttrs(source, node.Attrs),
		File:   filename,
		Line:   node.Pos.Line,
		Column: node.Pos.Column,
	}

	m.Receiver = schema.ReceiverNone
	if node.First != nil {
		if node.First.Receiver != nil {
			m.Receiver = receiverKind(node.First.Receiver)
		} else if node.First.Param != nil {
			m.Params = append(m.Params, buildParam(source, node.First.Param))
		}
	}
	for i := range node.Rest {
		m.Params = append(m.Params, buildParam(source, &node.Rest[i]))
	}

	// Forwarding needs an instance to forward to, so a method without a
	// receiver cannot be dispatched.
	if m.Receiver == schema.ReceiverNone {
		errs.Add(errors.NewReceiverlessMethodError(ifaceName, node.Name, location(filename, node.Pos)))
		return nil
	}

	if node.Return != nil {
		m.Return = node.Return.raw(source)
	}
	if node.Body != nil {
		m.Body = node.Body.raw(source)
	}
	return m
}

func (p *Parser) buildUnion(filename, source string, decl *declNode, errs *errors.ErrorList) *schema.UnionSpec {
	body := decl.Body.Union
	spec := &schema.UnionSpec{
		Name:       body.Name,
		Visibility: visRaw(source, decl.Vis),
		Docs:       append([]string(nil), decl.Docs...),
		Attrs:      buildAttrs(source, decl.Attrs),
		File:       filename,
		Line:       decl.Pos.Line,
		Column:     decl.Pos.Column,
	}

	if len(body.Variants) == 0 {
		errs.Add(errors.NewEmptyUnionError(body.Name, location(filename, decl.Pos)))
		return nil
	}

	before := errs.Count()
	for i := range body.Variants {
		v := &body.Variants[i]
		if len(v.Types) != 1 {
			errs.Add(errors.NewMalformedVariantError(body.Name, v.Name, len(v.Types), location(filename, v.Pos)))
			continue
		}
		spec.Variants = append(spec.Variants, schema.VariantSpec{
			Name:   v.Name,
			Type:   v.Types[0].raw(source),
			Docs:   append([]string(nil), v.Docs...),
			Attrs:  buildAttrs(source, v.Attrs),
			File:   filename,
			Line:   v.Pos.Line,
			Column: v.Pos.Column,
		})
	}
	if errs.Count() > before {
		return nil
	}
	return spec
}

func receiverKind(node *receiverNode) schema.ReceiverKind {
	switch {
	case node.Ref && node.Mut:
		return schema.ReceiverMutRef
	case node.Ref:
		return schema.ReceiverRef
	default:
		// mut self without & is still a by-value receiver; binding
		// mutability does not change how calls forward.
		return schema.ReceiverValue
	}
}

func buildParam(source string, node *paramNode) schema.ParamSpec {
	param := schema.ParamSpec{
		Name: node.Name,
		Type: node.Type.raw(source),
	}
	if impl := findImpl(&node.Type); impl != nil {
		param.Impl = true
		param.ImplName = impl.Name
	}
	return param
}

func findImpl(t *typeNode) *implType {
	for i := range t.Elems {
		if t.Elems[i].Impl != nil {
			return t.Elems[i].Impl
		}
	}
	return nil
}

func buildAttrs(source string, nodes []attrNode) []schema.Attribute {
	if len(nodes) == 0 {
		return nil
	}
	attrs := make([]schema.Attribute, 0, len(nodes))
	for i := range nodes {
		raw := nodes[i].raw(source)
		attrs = append(attrs, schema.Attribute{Raw: raw, Cfg: isCfgAttr(raw)})
	}
	return attrs
}

// isCfgAttr reports whether a raw attribute conditionally compiles the item
// it precedes. Only plain cfg counts; cfg_attr rewrites attributes instead
// of gating items.
func isCfgAttr(raw string) bool {
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(raw, "#["), "]"))
	if inner == "cfg" {
		return true
	}
	rest, ok := strings.CutPrefix(inner, "cfg")
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(rest), "(")
}

func visRaw(source string, node *visNode) string {
	if node == nil {
		return ""
	}
	return node.raw(source)
}

func location(file string, pos lexer.Position) errors.SourceLocation {
	return errors.SourceLocation{File: file, Line: pos.Line, Column: pos.Column}
}
