package emitter

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerDeclarationTemplates()
	registry.registerImplTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// registerDeclarationTemplates registers the passthrough declaration templates.
// Docs, Attrs, Methods and Variants arrive pre-rendered with their own
// indentation and trailing newlines, so the templates only fix the frame.
func (tr *TemplateRegistry) registerDeclarationTemplates() {
	tr.templates["file-header"] = `// Code generated by sumgen from {{.Source}}. DO NOT EDIT.`

	tr.templates["interface"] = `{{.Docs}}{{.Attrs}}{{.Visibility}}interface {{.Name}}{{.Bounds}} {
{{.Methods}}}`

	tr.templates["union"] = `{{.Docs}}{{.Attrs}}{{.Visibility}}enum {{.Name}} {
{{.Variants}}}`
}

// registerImplTemplates registers the generated implementation templates
func (tr *TemplateRegistry) registerImplTemplates() {
	tr.templates["impl"] = `impl {{.Interface}} for {{.Union}} {
{{.Methods}}}`

	tr.templates["impl-method"] = `{{.Docs}}{{.Attrs}}    {{.Signature}} {
        match self {
{{.Arms}}        }
    }
`

	tr.templates["from-impl"] = `{{.Attrs}}impl From<{{.Wrapped}}> for {{.Union}} {
    fn from(value: {{.Wrapped}}) -> {{.Union}} {
        {{.Union}}::{{.Variant}}(value)
    }
}`
}

// Global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
