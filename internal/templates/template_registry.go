package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerFileTemplates()
	registry.registerAccessorTemplates()
	registry.registerSliceTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// Execute renders the named template with data
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	tmpl, exists := tr.Get(name)
	if !exists {
		return "", errTemplateNotFound(name)
	}
	return executeTemplate(name, tmpl, data)
}

// registerFileTemplates registers the file header and struct declaration
func (tr *TemplateRegistry) registerFileTemplates() {
	tr.templates["file-header"] = GeneratedHeader + `

package {{.Package}}
{{if .Imports}}
{{.Imports}}{{end}}`

	tr.templates["struct"] = `// {{.Name}} is a mutable implementation of {{.Interface}}.
type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}
{{end}}}

var _ {{.Interface}} = (*{{.Name}})(nil)`
}

// registerAccessorTemplates registers getters and setters for plain attributes
func (tr *TemplateRegistry) registerAccessorTemplates() {
	tr.templates["getter"] = `// {{.Method}} returns {{.Attribute}}.
func ({{.Receiver}} *{{.TypeName}}) {{.Method}}() {{resultList .}} {
	return {{.Receiver}}.{{.Field}}{{if .Fallible}}, nil{{end}}
}`

	// The field holds a pointer to the generated struct; a nil pointer must
	// come back as a nil interface.
	tr.templates["reference-getter"] = `// {{.Method}} returns {{.Attribute}}.
func ({{.Receiver}} *{{.TypeName}}) {{.Method}}() {{resultList .}} {
	if {{.Receiver}}.{{.Field}} == nil {
		return nil{{if .Fallible}}, nil{{end}}
	}
	return {{.Receiver}}.{{.Field}}{{if .Fallible}}, nil{{end}}
}`

	tr.templates["setter"] = `// {{.Setter}} sets {{.Attribute}}.
func ({{.Receiver}} *{{.TypeName}}) {{.Setter}}({{.Field}} {{.FieldType}}) {
	{{.Receiver}}.{{.Field}} = {{.Field}}
}`
}

// registerSliceTemplates registers the slice conversion accessors
func (tr *TemplateRegistry) registerSliceTemplates() {
	tr.templates["slice-getter"] = `// {{.Method}} returns {{.Attribute}}.
func ({{.Receiver}} *{{.TypeName}}) {{.Method}}() {{resultList .}} {
	if {{.Receiver}}.{{.Field}} == nil {
		return nil{{if .Fallible}}, nil{{end}}
	}
	out := make({{.Type}}, len({{.Receiver}}.{{.Field}}))
	for idx, elem := range {{.Receiver}}.{{.Field}} {
		if elem != nil {
			out[idx] = elem
		}
	}
	return out{{if .Fallible}}, nil{{end}}
}`

	tr.templates["slice-setter"] = `// {{.Setter}} sets {{.Attribute}}.
func ({{.Receiver}} *{{.TypeName}}) {{.Setter}}({{.Field}} {{.FieldType}}) {
	{{.Receiver}}.{{.Field}} = {{.Field}}
}`
}
