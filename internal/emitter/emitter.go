// Package emitter renders synthesized expansions back into declaration
// source text. Rendering is purely textual; validation happens upstream, and
// identical input always produces byte-identical output.
package emitter

import (
	"bytes"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/schema"
)

// DeclExt is the extension of declaration files consumed by the engine
const DeclExt = ".sum"

// GeneratedSuffix replaces DeclExt on a declaration file's name to form the
// name of its generated counterpart
const GeneratedSuffix = "_gen.sum"

const (
	memberIndent = "    "
	armIndent    = "            "
)

// HeaderData feeds the file-header template
type HeaderData struct {
	Source string
}

// InterfaceData feeds the interface passthrough template. Docs, Attrs and
// Methods are pre-rendered line blocks.
type InterfaceData struct {
	Docs       string
	Attrs      string
	Visibility string
	Name       string
	Bounds     string
	Methods    string
}

// UnionData feeds the union passthrough template
type UnionData struct {
	Docs       string
	Attrs      string
	Visibility string
	Name       string
	Variants   string
}

// ImplData feeds the forwarding impl template
type ImplData struct {
	Interface string
	Union     string
	Methods   string
}

// ImplMethodData feeds the per-method forwarding template
type ImplMethodData struct {
	Docs      string
	Attrs     string
	Signature string
	Arms      string
}

// FromImplData feeds the conversion template
type FromImplData struct {
	Attrs   string
	Wrapped string
	Union   string
	Variant string
}

// Emitter renders expansions into generated declaration files
type Emitter struct {
	templates     *TemplateRegistry
	includeHeader bool
}

// New creates an emitter that prefixes output with the generated-file header
func New() *Emitter {
	return &Emitter{
		templates:     DefaultTemplateRegistry,
		includeHeader: true,
	}
}

// NewWithoutHeader creates an emitter that omits the generated-file header
func NewWithoutHeader() *Emitter {
	return &Emitter{
		templates:     DefaultTemplateRegistry,
		includeHeader: false,
	}
}

// OutputPath returns the generated-file path for a declaration file:
// shapes.sum becomes shapes_gen.sum in the same directory.
func OutputPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, DeclExt) + GeneratedSuffix
}

// RenderFile renders every expansion of one declaration file into the
// content of its generated counterpart. Top-level blocks are separated by
// single blank lines and the content ends with exactly one newline.
func (e *Emitter) RenderFile(sourcePath string, expansions []schema.Expansion) (*schema.GeneratedFile, error) {
	var blocks []string

	if e.includeHeader {
		header, err := e.executeTemplate("file-header", HeaderData{Source: filepath.Base(sourcePath)})
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, header)
	}

	for _, exp := range expansions {
		rendered, err := e.Render(exp)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, rendered)
	}

	return &schema.GeneratedFile{
		SourcePath: sourcePath,
		Path:       OutputPath(sourcePath),
		Content:    strings.Join(blocks, "\n\n") + "\n",
	}, nil
}

// Render produces the source text for one expansion: the passthrough
// interface and union declarations, the forwarding impl, and one conversion
// impl per variant, in that order.
func (e *Emitter) Render(exp schema.Expansion) (string, error) {
	iface := exp.Invocation.Interface
	union := exp.Invocation.Union

	blocks := make([]string, 0, 3+len(exp.Conversions))

	interfaceBlock, err := e.renderInterface(iface)
	if err != nil {
		return "", err
	}
	blocks = append(blocks, interfaceBlock)

	unionBlock, err := e.renderUnion(union)
	if err != nil {
		return "", err
	}
	blocks = append(blocks, unionBlock)

	implBlock, err := e.renderImpl(iface.Name, union.Name, exp.Forwarding)
	if err != nil {
		return "", err
	}
	blocks = append(blocks, implBlock)

	for _, conv := range exp.Conversions {
		fromBlock, err := e.renderFrom(union.Name, conv)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, fromBlock)
	}

	return strings.Join(blocks, "\n\n"), nil
}

// renderInterface re-renders the interface declaration from the model.
// Default bodies were captured verbatim and come back out untouched.
func (e *Emitter) renderInterface(iface *schema.InterfaceSpec) (string, error) {
	var methods strings.Builder
	for _, m := range iface.Methods {
		methods.WriteString(docLines(memberIndent, m.Docs))
		methods.WriteString(attrLines(memberIndent, m.Attrs))
		methods.WriteString(memberIndent)
		methods.WriteString(signature(m.Async, m.Name, m.Receiver, m.Params, m.Return))
		if m.HasDefaultBody() {
			methods.WriteString(" ")
			methods.WriteString(m.Body)
		} else {
			methods.WriteString(";")
		}
		methods.WriteString("\n")
	}

	data := InterfaceData{
		Docs:       docLines("", iface.Docs),
		Attrs:      attrLines("", iface.Attrs),
		Visibility: visibilityPrefix(iface.Visibility),
		Name:       iface.Name,
		Bounds:     boundSuffix(iface.Bounds),
		Methods:    methods.String(),
	}
	return e.executeTemplate("interface", data)
}

// renderUnion re-renders the union declaration with a trailing comma on
// every variant
func (e *Emitter) renderUnion(union *schema.UnionSpec) (string, error) {
	var variants strings.Builder
	for _, v := range union.Variants {
		variants.WriteString(docLines(memberIndent, v.Docs))
		variants.WriteString(attrLines(memberIndent, v.Attrs))
		variants.WriteString(memberIndent)
		variants.WriteString(v.Name)
		variants.WriteString("(")
		variants.WriteString(v.Type)
		variants.WriteString("),\n")
	}

	data := UnionData{
		Docs:       docLines("", union.Docs),
		Attrs:      attrLines("", union.Attrs),
		Visibility: visibilityPrefix(union.Visibility),
		Name:       union.Name,
		Variants:   variants.String(),
	}
	return e.executeTemplate("union", data)
}

// renderImpl renders the forwarding implementation block, one method per
// forwarding rule in effective order
func (e *Emitter) renderImpl(interfaceName, unionName string, rules []schema.ForwardingRule) (string, error) {
	var methods strings.Builder
	for _, rule := range rules {
		var arms strings.Builder
		for _, arm := range rule.Arms {
			arms.WriteString(attrLines(armIndent, arm.Attrs))
			arms.WriteString(armIndent)
			arms.WriteString(unionName)
			arms.WriteString("::")
			arms.WriteString(arm.Variant)
			arms.WriteString("(")
			arms.WriteString(arm.Binding)
			arms.WriteString(") => ")
			arms.WriteString(forwardedCall(arm.Binding, rule.Method))
			arms.WriteString(",\n")
		}

		data := ImplMethodData{
			Docs:      docLines(memberIndent, rule.Method.Docs),
			Attrs:     attrLines(memberIndent, rule.Method.Attrs),
			Signature: signature(rule.Method.Async, rule.Method.Name, rule.Method.Receiver, rule.Method.Params, rule.Method.Return),
			Arms:      arms.String(),
		}
		rendered, err := e.executeTemplate("impl-method", data)
		if err != nil {
			return "", err
		}
		methods.WriteString(rendered)
	}

	data := ImplData{
		Interface: interfaceName,
		Union:     unionName,
		Methods:   methods.String(),
	}
	return e.executeTemplate("impl", data)
}

// renderFrom renders one wrapped-type conversion impl
func (e *Emitter) renderFrom(unionName string, conv schema.ConversionRule) (string, error) {
	data := FromImplData{
		Attrs:   attrLines("", conv.Attrs),
		Wrapped: conv.Wrapped,
		Union:   unionName,
		Variant: conv.Variant,
	}
	return e.executeTemplate("from-impl", data)
}

// executeTemplate renders a registered template with the given data
func (e *Emitter) executeTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(e.templates.MustGet(name))
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}

// forwardedCall builds the inner call one match arm forwards to
func forwardedCall(binding string, method schema.NormalizedMethod) string {
	var b strings.Builder
	b.WriteString(binding)
	b.WriteString(".")
	b.WriteString(method.Name)
	b.WriteString("(")
	b.WriteString(strings.Join(method.Forwards, ", "))
	b.WriteString(")")
	if method.Async {
		b.WriteString(".await")
	}
	return b.String()
}

// signature renders a full method signature, receiver included
func signature(async bool, name string, receiver schema.ReceiverKind, params []schema.ParamSpec, ret string) string {
	var b strings.Builder
	if async {
		b.WriteString("async ")
	}
	b.WriteString("fn ")
	b.WriteString(name)
	b.WriteString("(")
	b.WriteString(receiver.String())
	for _, p := range params {
		b.WriteString(", ")
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	b.WriteString(")")
	if ret != "" {
		b.WriteString(" -> ")
		b.WriteString(ret)
	}
	return b.String()
}

// docLines renders doc comments one per line at the given indentation
func docLines(prefix string, docs []string) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range docs {
		b.WriteString(prefix)
		b.WriteString(d)
		b.WriteString("\n")
	}
	return b.String()
}

// attrLines renders attributes one per line at the given indentation
func attrLines(prefix string, attrs []schema.Attribute) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(prefix)
		b.WriteString(a.Raw)
		b.WriteString("\n")
	}
	return b.String()
}

// visibilityPrefix renders the verbatim visibility with its separating space
func visibilityPrefix(vis string) string {
	if vis == "" {
		return ""
	}
	return vis + " "
}

// boundSuffix re-renders the bound list in declaration order
func boundSuffix(bounds []schema.BoundSpec) string {
	if len(bounds) == 0 {
		return ""
	}
	names := make([]string, 0, len(bounds))
	for _, b := range bounds {
		names = append(names, b.Name)
	}
	return ": " + strings.Join(names, " + ")
}
