// Package conversion holds the strategies that let a generated struct store
// attributes whose declared type wraps an interface that is itself being
// generated, e.g. a slice of such interfaces.
package conversion

import (
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/templates"
)

// Strategy converts between the declared, interface-typed view of an attribute
// and the concrete generated types the struct stores.
type Strategy interface {
	// Name identifies the strategy in registries and error messages
	Name() string
	// Recognize reports whether the strategy handles expr
	Recognize(expr string, renames models.RenameMap) bool
	// Render produces the field type and accessor bodies for attr
	Render(attr models.AccessorDescriptor, ctx RenderContext) (Rendering, error)
}

// RenderContext carries everything a strategy needs to render one attribute
type RenderContext struct {
	Interface string // qualified name of the interface being emitted
	TypeName  string // simple name of the generated type
	Receiver  string // receiver identifier
	Field     string // field and setter parameter identifier
	Renames   models.RenameMap
	Setters   bool
	Templates *templates.TemplateRegistry
	// Qualify renders a qualified type expression relative to the target package
	Qualify func(expr string) string
}

// Rendering is the output of a strategy for one attribute
type Rendering struct {
	FieldType string // stored type as Go source
	Getter    string // getter method source
	Setter    string // setter method source, empty when setters are disabled
}

// accessorData fills the template data shared by all strategies
func accessorData(attr models.AccessorDescriptor, ctx RenderContext, resultType, fieldType string) templates.AccessorData {
	return templates.AccessorData{
		Receiver:  ctx.Receiver,
		TypeName:  ctx.TypeName,
		Method:    attr.Method,
		Setter:    attr.SetterName(),
		Attribute: attr.Attribute,
		Field:     ctx.Field,
		Type:      resultType,
		FieldType: fieldType,
		Fallible:  attr.Fallible,
	}
}
