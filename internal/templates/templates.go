package templates

import (
	"bytes"
	"text/template"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/utils"
)

// GeneratedHeader is the first line of every file dtogen writes
const GeneratedHeader = utils.GeneratedHeader

// FileData feeds the file-header template
type FileData struct {
	Package string // package clause name
	Imports string // rendered import block, may be empty
}

// FieldData is one struct field
type FieldData struct {
	Name string
	Type string
}

// StructData feeds the struct template
type StructData struct {
	Name      string // generated type name
	Interface string // implemented interface, as written in the target package
	Fields    []FieldData
}

// AccessorData feeds every getter and setter template
type AccessorData struct {
	Receiver  string // receiver identifier
	TypeName  string // generated type name
	Method    string // getter name
	Setter    string // setter name
	Attribute string // attribute name used in doc comments
	Field     string // struct field and setter parameter identifier
	Type      string // getter result type
	FieldType string // stored type, also the setter parameter type
	Fallible  bool   // getter also returns an error
}

// errTemplateNotFound reports a lookup of an unregistered template
func errTemplateNotFound(name string) error {
	return errors.Newf(errors.TemplateErrorCode, "template not found: %s", name).
		WithContext("template", name)
}

// resultList renders the getter result list
func resultList(data AccessorData) string {
	if data.Fallible {
		return "(" + data.Type + ", error)"
	}
	return data.Type
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"resultList": resultList,
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}
