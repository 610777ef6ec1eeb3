package normalizer

import (
	"strings"
	"testing"

	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/registry"
	"github.com/toyz/sumgen/internal/schema"
)

func refMethod(name string, params ...schema.ParamSpec) schema.MethodSpec {
	return schema.MethodSpec{
		Name:     name,
		Receiver: schema.ReceiverRef,
		Params:   params,
	}
}

func invocation(iface *schema.InterfaceSpec) schema.Invocation {
	return schema.Invocation{
		Interface: iface,
		Union: &schema.UnionSpec{
			Name:     "Subject",
			Variants: []schema.VariantSpec{{Name: "A", Type: "Alpha"}},
		},
	}
}

func supers(names ...string) []schema.BoundSpec {
	bounds := make([]schema.BoundSpec, 0, len(names))
	for _, n := range names {
		bounds = append(bounds, schema.BoundSpec{Kind: schema.BoundSupertrait, Name: n})
	}
	return bounds
}

func TestNormalizeLocalMethods(t *testing.T) {
	iface := &schema.InterfaceSpec{
		Name: "ShapeTrait",
		Methods: []schema.MethodSpec{
			{
				Name:     "scale",
				Receiver: schema.ReceiverMutRef,
				Params: []schema.ParamSpec{
					{Name: "factor", Type: "f64"},
					{Name: "origin", Type: "Point"},
				},
				Return: "f64",
				Async:  true,
				Attrs:  []schema.Attribute{{Raw: "#[cfg(unix)]", Cfg: true}},
				Docs:   []string{"/// Scales in place."},
			},
			refMethod("area"),
		},
	}

	methods, err := New(registry.NewInterfaceRegistry()).Normalize(invocation(iface))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(methods) != 2 {
		t.Fatalf("Expected 2 methods, got %d", len(methods))
	}

	scale := methods[0]
	if scale.Name != "scale" || scale.Receiver != schema.ReceiverMutRef {
		t.Errorf("Unexpected first method: %+v", scale)
	}
	if len(scale.Forwards) != 2 || scale.Forwards[0] != "factor" || scale.Forwards[1] != "origin" {
		t.Errorf("Forwarding list wrong: %+v", scale.Forwards)
	}
	if !scale.Async || scale.Return != "f64" {
		t.Errorf("Signature fields lost: %+v", scale)
	}
	if len(scale.Attrs) != 1 || !scale.Attrs[0].Cfg {
		t.Errorf("Attrs lost: %+v", scale.Attrs)
	}
	if scale.Origin != "ShapeTrait" {
		t.Errorf("Expected origin ShapeTrait, got %s", scale.Origin)
	}
	if methods[1].Name != "area" {
		t.Errorf("Declaration order not preserved: %+v", methods)
	}
}

func TestNormalizeSupertraitMerge(t *testing.T) {
	reg := registry.NewInterfaceRegistry()
	parent := &schema.InterfaceSpec{
		Name: "Base",
		Methods: []schema.MethodSpec{
			refMethod("first"),
			refMethod("second"),
		},
	}
	if err := reg.Register(parent); err != nil {
		t.Fatalf("Failed to register parent: %v", err)
	}

	iface := &schema.InterfaceSpec{
		Name:    "Derived",
		Bounds:  supers("Base"),
		Methods: []schema.MethodSpec{refMethod("local")},
	}

	methods, err := New(reg).Normalize(invocation(iface))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	var names []string
	for _, m := range methods {
		names = append(names, m.Name)
	}
	want := []string{"local", "first", "second"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Merge order wrong: got %v, want %v", names, want)
		}
	}
	if methods[0].Origin != "Derived" || methods[1].Origin != "Base" {
		t.Errorf("Origins wrong: %s, %s", methods[0].Origin, methods[1].Origin)
	}
}

func TestNormalizeMultipleSupertraits(t *testing.T) {
	reg := registry.NewInterfaceRegistry()
	for _, p := range []*schema.InterfaceSpec{
		{Name: "Readable", Methods: []schema.MethodSpec{refMethod("read")}},
		{Name: "Writable", Methods: []schema.MethodSpec{refMethod("write")}},
	} {
		if err := reg.Register(p); err != nil {
			t.Fatalf("Failed to register %s: %v", p.Name, err)
		}
	}

	iface := &schema.InterfaceSpec{
		Name:    "Stream",
		Bounds:  supers("Writable", "Readable"),
		Methods: []schema.MethodSpec{refMethod("close")},
	}

	methods, err := New(reg).Normalize(invocation(iface))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(methods) != 3 {
		t.Fatalf("Expected 3 methods, got %d", len(methods))
	}
	// Bound order, not alphabetical
	if methods[1].Name != "write" || methods[2].Name != "read" {
		t.Errorf("Supertrait order wrong: %s, %s", methods[1].Name, methods[2].Name)
	}
}

func TestNormalizeUnknownSupertrait(t *testing.T) {
	iface := &schema.InterfaceSpec{
		Name:    "Derived",
		Bounds:  supers("Ghost"),
		Methods: []schema.MethodSpec{refMethod("local")},
	}

	_, err := New(registry.NewInterfaceRegistry()).Normalize(invocation(iface))
	if err == nil {
		t.Fatal("Expected unknown supertrait to fail")
	}
	if errors.CodeOf(err) != errors.MalformedInterfaceCode {
		t.Errorf("Expected MalformedInterface, got %v", err)
	}
	if !strings.Contains(err.Error(), "Ghost") {
		t.Errorf("Error should name the supertrait: %v", err)
	}
}

func TestNormalizeInheritanceDepth(t *testing.T) {
	reg := registry.NewInterfaceRegistry()
	grandparent := &schema.InterfaceSpec{Name: "Root", Methods: []schema.MethodSpec{refMethod("root")}}
	parent := &schema.InterfaceSpec{
		Name:    "Mid",
		Bounds:  supers("Root"),
		Methods: []schema.MethodSpec{refMethod("mid")},
	}
	for _, p := range []*schema.InterfaceSpec{grandparent, parent} {
		if err := reg.Register(p); err != nil {
			t.Fatalf("Failed to register %s: %v", p.Name, err)
		}
	}

	iface := &schema.InterfaceSpec{
		Name:    "Leaf",
		Bounds:  supers("Mid"),
		Methods: []schema.MethodSpec{refMethod("leaf")},
	}

	_, err := New(reg).Normalize(invocation(iface))
	if err == nil {
		t.Fatal("Expected deep inheritance to fail")
	}
	if errors.CodeOf(err) != errors.InheritanceDepthCode {
		t.Errorf("Expected UnsupportedInheritanceDepth, got %v", err)
	}
}

func TestNormalizeSelfReferentialSupertrait(t *testing.T) {
	reg := registry.NewInterfaceRegistry()
	iface := &schema.InterfaceSpec{
		Name:    "Loop",
		Bounds:  supers("Loop"),
		Methods: []schema.MethodSpec{refMethod("spin")},
	}
	if err := reg.Register(iface); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	_, err := New(reg).Normalize(invocation(iface))
	if err == nil {
		t.Fatal("Expected self-referential supertrait to fail")
	}
	if errors.CodeOf(err) != errors.InheritanceDepthCode {
		t.Errorf("Expected UnsupportedInheritanceDepth, got %v", err)
	}
}

func TestNormalizeMethodCollision(t *testing.T) {
	t.Run("local shadows inherited", func(t *testing.T) {
		reg := registry.NewInterfaceRegistry()
		parent := &schema.InterfaceSpec{Name: "Base", Methods: []schema.MethodSpec{refMethod("area")}}
		if err := reg.Register(parent); err != nil {
			t.Fatalf("Failed to register parent: %v", err)
		}

		iface := &schema.InterfaceSpec{
			Name:    "Derived",
			Bounds:  supers("Base"),
			Methods: []schema.MethodSpec{refMethod("area")},
		}

		_, err := New(reg).Normalize(invocation(iface))
		if err == nil {
			t.Fatal("Expected method collision to fail")
		}
		if errors.CodeOf(err) != errors.MalformedInterfaceCode {
			t.Errorf("Expected MalformedInterface, got %v", err)
		}
		if !strings.Contains(err.Error(), "collides") {
			t.Errorf("Error should mention the collision: %v", err)
		}
	})

	t.Run("diamond across supertraits", func(t *testing.T) {
		reg := registry.NewInterfaceRegistry()
		for _, p := range []*schema.InterfaceSpec{
			{Name: "Left", Methods: []schema.MethodSpec{refMethod("shared")}},
			{Name: "Right", Methods: []schema.MethodSpec{refMethod("shared")}},
		} {
			if err := reg.Register(p); err != nil {
				t.Fatalf("Failed to register %s: %v", p.Name, err)
			}
		}

		iface := &schema.InterfaceSpec{
			Name:    "Both",
			Bounds:  supers("Left", "Right"),
			Methods: []schema.MethodSpec{refMethod("own")},
		}

		_, err := New(reg).Normalize(invocation(iface))
		if err == nil {
			t.Fatal("Expected diamond collision to fail")
		}
		if errors.CodeOf(err) != errors.MalformedInterfaceCode {
			t.Errorf("Expected MalformedInterface, got %v", err)
		}
	})
}

func TestNormalizeRejectsMissingReceiver(t *testing.T) {
	iface := &schema.InterfaceSpec{
		Name: "Handmade",
		Methods: []schema.MethodSpec{
			{Name: "floating", Receiver: schema.ReceiverNone},
		},
	}

	_, err := New(registry.NewInterfaceRegistry()).Normalize(invocation(iface))
	if err == nil {
		t.Fatal("Expected receiverless method to fail")
	}
	if errors.CodeOf(err) != errors.MalformedInterfaceCode {
		t.Errorf("Expected MalformedInterface, got %v", err)
	}
}
