package emitter

import (
	"strings"
	"testing"

	"github.com/toyz/sumgen/internal/schema"
)

func greeterExpansion() schema.Expansion {
	iface := &schema.InterfaceSpec{
		Name: "Greeter",
		Methods: []schema.MethodSpec{
			{Name: "greet", Receiver: schema.ReceiverRef, Return: "String"},
		},
	}
	union := &schema.UnionSpec{
		Name: "Frontend",
		Variants: []schema.VariantSpec{
			{Name: "Console", Type: "ConsoleGreeter"},
		},
	}
	return schema.Expansion{
		Invocation: schema.Invocation{Interface: iface, Union: union},
		Forwarding: []schema.ForwardingRule{
			{
				Method: schema.NormalizedMethod{
					Name:     "greet",
					Receiver: schema.ReceiverRef,
					Return:   "String",
					Origin:   "Greeter",
				},
				Arms: []schema.MatchArm{
					{Variant: "Console", Binding: "v"},
				},
			},
		},
		Conversions: []schema.ConversionRule{
			{Variant: "Console", Wrapped: "ConsoleGreeter"},
		},
	}
}

func TestRender_MinimalExpansion(t *testing.T) {
	want := `interface Greeter {
    fn greet(&self) -> String;
}

enum Frontend {
    Console(ConsoleGreeter),
}

impl Greeter for Frontend {
    fn greet(&self) -> String {
        match self {
            Frontend::Console(v) => v.greet(),
        }
    }
}

impl From<ConsoleGreeter> for Frontend {
    fn from(value: ConsoleGreeter) -> Frontend {
        Frontend::Console(value)
    }
}`

	got, err := New().Render(greeterExpansion())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("rendered expansion mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func shapeExpansion() schema.Expansion {
	cfg := schema.Attribute{Raw: `#[cfg(feature = "platform_specific")]`, Cfg: true}

	iface := &schema.InterfaceSpec{
		Name: "ShapeTrait",
		Docs: []string{"/// Behavior shared by every shape."},
		Methods: []schema.MethodSpec{
			{
				Name:     "print_name",
				Receiver: schema.ReceiverRef,
				Body:     "{\n        println!(\"{}\", self.name());\n    }",
				Docs:     []string{"/// Prints the shape's name."},
			},
			{Name: "name", Receiver: schema.ReceiverRef, Return: "String"},
			{
				Name:     "grow",
				Receiver: schema.ReceiverMutRef,
				Params:   []schema.ParamSpec{{Name: "amount", Type: "i32"}},
			},
			{
				Name:     "send",
				Receiver: schema.ReceiverRef,
				Params:   []schema.ParamSpec{{Name: "target", Type: "&Printer"}},
				Return:   "Result<(), Error>",
				Async:    true,
			},
			{
				Name:     "area_3d",
				Receiver: schema.ReceiverRef,
				Return:   "i64",
				Attrs:    []schema.Attribute{cfg},
			},
		},
	}

	union := &schema.UnionSpec{
		Name:       "Shape",
		Visibility: "pub",
		Attrs:      []schema.Attribute{{Raw: "#[derive(Debug, Clone)]"}},
		Variants: []schema.VariantSpec{
			{Name: "Rect", Type: "Rect"},
			{Name: "Circle", Type: "Circle"},
			{
				Name:  "Cube",
				Type:  "Cube",
				Docs:  []string{"/// Only on platforms with 3d support."},
				Attrs: []schema.Attribute{cfg},
			},
		},
	}

	arms := []schema.MatchArm{
		{Variant: "Rect", Binding: "v"},
		{Variant: "Circle", Binding: "v"},
		{Variant: "Cube", Binding: "v", Attrs: []schema.Attribute{cfg}},
	}

	var rules []schema.ForwardingRule
	for _, m := range iface.Methods {
		forwards := make([]string, 0, len(m.Params))
		for _, p := range m.Params {
			forwards = append(forwards, p.Name)
		}
		rules = append(rules, schema.ForwardingRule{
			Method: schema.NormalizedMethod{
				Name:     m.Name,
				Receiver: m.Receiver,
				Params:   m.Params,
				Forwards: forwards,
				Return:   m.Return,
				Async:    m.Async,
				Attrs:    m.Attrs,
				Docs:     m.Docs,
				Origin:   iface.Name,
			},
			Arms: arms,
		})
	}

	return schema.Expansion{
		Invocation: schema.Invocation{Interface: iface, Union: union},
		Forwarding: rules,
		Conversions: []schema.ConversionRule{
			{Variant: "Rect", Wrapped: "Rect"},
			{Variant: "Circle", Wrapped: "Circle"},
			{Variant: "Cube", Wrapped: "Cube", Attrs: []schema.Attribute{cfg}},
		},
	}
}

func TestRender_DeclarationsPassThrough(t *testing.T) {
	content, err := New().Render(shapeExpansion())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Interface docs sit above the declaration, methods keep their order
	// and shape.
	expected := []string{
		"/// Behavior shared by every shape.\ninterface ShapeTrait {\n",
		"    /// Prints the shape's name.\n    fn print_name(&self) {\n        println!(\"{}\", self.name());\n    }\n",
		"    fn name(&self) -> String;\n",
		"    fn grow(&mut self, amount: i32);\n",
		"    async fn send(&self, target: &Printer) -> Result<(), Error>;\n",
		"    #[cfg(feature = \"platform_specific\")]\n    fn area_3d(&self) -> i64;\n",
		"#[derive(Debug, Clone)]\npub enum Shape {\n",
		"    Rect(Rect),\n",
		"    Circle(Circle),\n",
		"    /// Only on platforms with 3d support.\n    #[cfg(feature = \"platform_specific\")]\n    Cube(Cube),\n",
	}
	for _, want := range expected {
		if !strings.Contains(content, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, content)
		}
	}
}

func TestRender_ForwardingImpl(t *testing.T) {
	content, err := New().Render(shapeExpansion())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content, "impl ShapeTrait for Shape {\n") {
		t.Errorf("expected forwarding impl header, got:\n%s", content)
	}

	// Every arm binds the payload and forwards the declared arguments.
	expected := []string{
		"            Shape::Rect(v) => v.print_name(),\n",
		"    fn grow(&mut self, amount: i32) {\n        match self {\n            Shape::Rect(v) => v.grow(amount),\n",
		"            Shape::Circle(v) => v.send(target).await,\n",
		"            Shape::Cube(v) => v.area_3d(),\n",
	}
	for _, want := range expected {
		if !strings.Contains(content, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, content)
		}
	}

	// Method docs ride along to the forwarder, once in the interface and
	// once in the impl.
	if n := strings.Count(content, "    /// Prints the shape's name.\n"); n != 2 {
		t.Errorf("expected method doc twice, got %d occurrences", n)
	}

	// Conditional variants gate every arm that mentions them.
	armTag := "            #[cfg(feature = \"platform_specific\")]\n            Shape::Cube(v)"
	methods := strings.Count(content, "        match self {\n")
	if n := strings.Count(content, armTag); n != methods {
		t.Errorf("expected a gated Cube arm per method (%d), got %d", methods, n)
	}
}

func TestRender_ConversionImpls(t *testing.T) {
	content, err := New().Render(shapeExpansion())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "impl From<Rect> for Shape {\n    fn from(value: Rect) -> Shape {\n        Shape::Rect(value)\n    }\n}"
	if !strings.Contains(content, want) {
		t.Errorf("expected conversion impl %q, got:\n%s", want, content)
	}

	// The conditional variant's conversion is gated the same way.
	if !strings.Contains(content, "#[cfg(feature = \"platform_specific\")]\nimpl From<Cube> for Shape {") {
		t.Errorf("expected gated Cube conversion, got:\n%s", content)
	}

	// Variant docs belong to the union declaration only.
	if n := strings.Count(content, "/// Only on platforms with 3d support."); n != 1 {
		t.Errorf("expected variant doc once, got %d occurrences", n)
	}
}

func TestRender_BlockOrder(t *testing.T) {
	content, err := New().Render(shapeExpansion())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	positions := []int{
		strings.Index(content, "interface ShapeTrait"),
		strings.Index(content, "pub enum Shape"),
		strings.Index(content, "impl ShapeTrait for Shape"),
		strings.Index(content, "impl From<Rect> for Shape"),
		strings.Index(content, "impl From<Circle> for Shape"),
		strings.Index(content, "impl From<Cube> for Shape"),
	}
	for i, pos := range positions {
		if pos < 0 {
			t.Fatalf("block %d missing in output:\n%s", i, content)
		}
		if i > 0 && pos <= positions[i-1] {
			t.Errorf("block %d out of order (offset %d after %d)", i, pos, positions[i-1])
		}
	}
}

func TestRender_BoundListInDeclarationOrder(t *testing.T) {
	exp := greeterExpansion()
	exp.Invocation.Interface.Name = "Advanced"
	exp.Invocation.Interface.Bounds = []schema.BoundSpec{
		{Kind: schema.BoundSupertrait, Name: "Base"},
		{Kind: schema.BoundMarker, Name: "std::fmt::Debug"},
		{Kind: schema.BoundLifetime, Name: "'static"},
	}

	content, err := New().Render(exp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content, "interface Advanced: Base + std::fmt::Debug + 'static {\n") {
		t.Errorf("expected bound list in declaration order, got:\n%s", content)
	}
}

func TestRender_VisibilityPrefixes(t *testing.T) {
	exp := greeterExpansion()
	exp.Invocation.Interface.Visibility = "pub(crate)"
	exp.Invocation.Union.Visibility = "pub"

	content, err := New().Render(exp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content, "pub(crate) interface Greeter {\n") {
		t.Errorf("expected scoped interface visibility, got:\n%s", content)
	}
	if !strings.Contains(content, "pub enum Frontend {\n") {
		t.Errorf("expected public union, got:\n%s", content)
	}
}

func TestRenderFile_Header(t *testing.T) {
	file, err := New().RenderFile("examples/shapes/shapes.sum", []schema.Expansion{greeterExpansion()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The header names the source by base name so output does not depend
	// on where the tool ran from.
	if !strings.HasPrefix(file.Content, "// Code generated by sumgen from shapes.sum. DO NOT EDIT.\n\ninterface Greeter {") {
		t.Errorf("expected generated-file header, got:\n%s", file.Content)
	}

	if file.SourcePath != "examples/shapes/shapes.sum" {
		t.Errorf("expected source path preserved, got %s", file.SourcePath)
	}
	if file.Path != "examples/shapes/shapes_gen.sum" {
		t.Errorf("expected generated path next to source, got %s", file.Path)
	}
}

func TestRenderFile_WithoutHeader(t *testing.T) {
	file, err := NewWithoutHeader().RenderFile("shapes.sum", []schema.Expansion{greeterExpansion()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(file.Content, "interface Greeter {") {
		t.Errorf("expected headerless output, got:\n%s", file.Content)
	}
}

func TestRenderFile_SeparationAndFinalNewline(t *testing.T) {
	second := greeterExpansion()
	second.Invocation.Interface = &schema.InterfaceSpec{
		Name: "Speaker",
		Methods: []schema.MethodSpec{
			{Name: "say", Receiver: schema.ReceiverRef},
		},
	}
	second.Invocation.Union = &schema.UnionSpec{
		Name: "Backend",
		Variants: []schema.VariantSpec{
			{Name: "Tty", Type: "TtySpeaker"},
		},
	}
	second.Forwarding = []schema.ForwardingRule{
		{
			Method: schema.NormalizedMethod{Name: "say", Receiver: schema.ReceiverRef, Origin: "Speaker"},
			Arms:   []schema.MatchArm{{Variant: "Tty", Binding: "v"}},
		},
	}
	second.Conversions = []schema.ConversionRule{
		{Variant: "Tty", Wrapped: "TtySpeaker"},
	}

	file, err := New().RenderFile("mixed.sum", []schema.Expansion{greeterExpansion(), second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(file.Content, "}\n\ninterface Speaker {") {
		t.Errorf("expected expansions separated by one blank line, got:\n%s", file.Content)
	}
	if !strings.HasSuffix(file.Content, "}\n") {
		t.Errorf("expected content to end with a single newline, got tail %q", file.Content[len(file.Content)-4:])
	}
	if strings.HasSuffix(file.Content, "\n\n") {
		t.Errorf("expected no trailing blank line")
	}
}

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"shapes.sum":                 "shapes_gen.sum",
		"examples/protocol/wire.sum": "examples/protocol/wire_gen.sum",
	}
	for in, want := range cases {
		if got := OutputPath(in); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
