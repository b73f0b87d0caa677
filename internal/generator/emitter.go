package generator

import (
	"go/token"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/toyz/dtogen/internal/conversion"
	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/registry"
	"github.com/toyz/dtogen/internal/templates"
	"github.com/toyz/dtogen/internal/typeexpr"
	"github.com/toyz/dtogen/internal/utils"
)

// bodyLocals are the identifiers declared inside generated method bodies
var bodyLocals = []string{"out", "idx", "elem", "err"}

// emitter renders one generated struct per accepted interface. It only reads
// shared state and is safe for concurrent use.
type emitter struct {
	suffix     string
	setters    bool
	renames    models.RenameMap
	strategies *registry.StrategyRegistry
	templates  *templates.TemplateRegistry
}

// emit produces the formatted source for iface
func (e *emitter) emit(iface *models.InterfaceDescriptor) (models.GeneratedClass, error) {
	typeName := iface.Name + e.suffix
	qualified, ok := e.renames.Lookup(iface.QualifiedName)
	if !ok {
		return models.GeneratedClass{}, errors.NewGenerationError(iface.QualifiedName, "", "interface has no generated name")
	}

	fields := make([]string, len(iface.Accessors))
	for i, attr := range iface.Accessors {
		fields[i] = fieldName(attr.Attribute)
	}

	im := templates.NewImportManager(iface.Package, bodyLocals...)
	for _, path := range e.referencedPackages(iface) {
		im.AddPackageImport(path, iface.PackageNameFor(path))
	}
	receiver := chooseReceiver(typeName, fields, im.Aliases())
	qualify := func(expr string) string {
		return typeexpr.Render(expr, im.Qualify)
	}

	structData := templates.StructData{Name: typeName, Interface: iface.Name}
	var methods []string
	for i, attr := range iface.Accessors {
		rendering, err := e.renderAccessor(iface, attr, conversion.RenderContext{
			Interface: iface.QualifiedName,
			TypeName:  typeName,
			Receiver:  receiver,
			Field:     fields[i],
			Renames:   e.renames,
			Setters:   e.setters,
			Templates: e.templates,
			Qualify:   qualify,
		})
		if err != nil {
			return models.GeneratedClass{}, err
		}
		structData.Fields = append(structData.Fields, templates.FieldData{Name: fields[i], Type: rendering.FieldType})
		methods = append(methods, rendering.Getter)
		if rendering.Setter != "" {
			methods = append(methods, rendering.Setter)
		}
	}

	header, err := e.templates.Execute("file-header", templates.FileData{
		Package: iface.PackageName,
		Imports: im.GenerateImports(),
	})
	if err != nil {
		return models.GeneratedClass{}, errors.NewGenerationError(iface.QualifiedName, "", err.Error())
	}
	body, err := e.templates.Execute("struct", structData)
	if err != nil {
		return models.GeneratedClass{}, errors.NewGenerationError(iface.QualifiedName, "", err.Error())
	}

	var src strings.Builder
	src.WriteString(header)
	src.WriteString("\n")
	src.WriteString(body)
	for _, m := range methods {
		src.WriteString("\n\n")
		src.WriteString(m)
	}
	src.WriteString("\n")

	filename := utils.GeneratedFileName(typeName)
	formatted, err := utils.FormatGoCodeString(filename, src.String())
	if err != nil {
		genErr := errors.NewGenerationError(iface.QualifiedName, "", "generated source does not format")
		genErr.WithCause(err).WithContext("file", filename)
		return models.GeneratedClass{}, genErr
	}

	return models.GeneratedClass{
		QualifiedName: qualified,
		Package:       iface.Package,
		Name:          typeName,
		Interface:     iface.QualifiedName,
		SourceText:    formatted,
	}, nil
}

// renderAccessor renders the field type and methods for one accessor
func (e *emitter) renderAccessor(iface *models.InterfaceDescriptor, attr models.AccessorDescriptor, ctx conversion.RenderContext) (conversion.Rendering, error) {
	cls, err := Classify(attr.Type, e.renames, e.strategies)
	if err != nil {
		return conversion.Rendering{}, err
	}

	switch cls.Kind {
	case KindStrategy:
		return cls.Strategy.Render(attr, ctx)
	case KindUnresolvable:
		genErr := errors.NewGenerationError(iface.QualifiedName, attr.Attribute, "type "+attr.Type+" cannot be converted")
		genErr.WithContext("type", attr.Type)
		return conversion.Rendering{}, genErr
	}

	getterTemplate := "getter"
	fieldType := ctx.Qualify(attr.Type)
	if cls.Reference != "" {
		generated, _ := e.renames.Lookup(cls.Reference)
		getterTemplate = "reference-getter"
		fieldType = ctx.Qualify("*" + generated)
	}

	data := templates.AccessorData{
		Receiver:  ctx.Receiver,
		TypeName:  ctx.TypeName,
		Method:    attr.Method,
		Setter:    attr.SetterName(),
		Attribute: attr.Attribute,
		Field:     ctx.Field,
		Type:      ctx.Qualify(attr.Type),
		FieldType: fieldType,
		Fallible:  attr.Fallible,
	}

	getter, err := e.templates.Execute(getterTemplate, data)
	if err != nil {
		return conversion.Rendering{}, errors.NewGenerationError(iface.QualifiedName, attr.Attribute, err.Error())
	}
	rendering := conversion.Rendering{FieldType: fieldType, Getter: getter}
	if e.setters {
		setter, err := e.templates.Execute("setter", data)
		if err != nil {
			return conversion.Rendering{}, errors.NewGenerationError(iface.QualifiedName, attr.Attribute, err.Error())
		}
		rendering.Setter = setter
	}
	return rendering, nil
}

// referencedPackages lists, sorted, every import path the generated file needs:
// those of the declared types and of their rewritten forms
func (e *emitter) referencedPackages(iface *models.InterfaceDescriptor) []string {
	seen := make(map[string]bool)
	for _, attr := range iface.Accessors {
		for _, expr := range []string{attr.Type, typeexpr.Rewrite(attr.Type, e.renames)} {
			for _, path := range typeexpr.Packages(expr) {
				if path != iface.Package {
					seen[path] = true
				}
			}
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// fieldName turns an attribute into a field identifier; keywords get a
// trailing underscore (type -> type_)
func fieldName(attribute string) string {
	if token.IsKeyword(attribute) {
		return attribute + "_"
	}
	return attribute
}

// chooseReceiver picks the receiver identifier: the lower-cased first letter
// of the type name unless it collides with a field, an import alias or a
// body local
func chooseReceiver(typeName string, fields, aliases []string) string {
	taken := make(map[string]bool, len(fields)+len(aliases)+len(bodyLocals))
	for _, list := range [][]string{fields, aliases, bodyLocals} {
		for _, name := range list {
			taken[name] = true
		}
	}

	candidates := []string{"dto", "self"}
	for _, r := range typeName {
		if unicode.IsLetter(r) {
			candidates = append([]string{string(unicode.ToLower(r))}, candidates...)
		}
		break
	}
	for _, c := range candidates {
		if !taken[c] {
			return c
		}
	}
	for n := 0; ; n++ {
		if c := "r" + strconv.Itoa(n); !taken[c] {
			return c
		}
	}
}
