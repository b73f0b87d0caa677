package generator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
)

// getterPattern matches accessor names: Get followed by an upper-case letter
var getterPattern = regexp.MustCompile(`^Get[A-Z]`)

// validateStructure runs every check that does not depend on other candidates
func validateStructure(td models.TypeDescriptor) (*models.InterfaceDescriptor, *errors.SkipError) {
	skip := func(method, reason string) *errors.SkipError {
		err := errors.NewSkipError(td.QualifiedName, method, reason)
		if td.Source != "" {
			err.WithLocation(errors.ParseLocation(td.Source))
		}
		return err
	}

	switch td.Kind {
	case models.KindInterface:
	case models.KindConstraint:
		return nil, skip("", "constraint interfaces with type sets cannot be implemented")
	default:
		return nil, skip("", fmt.Sprintf("not an interface (%s)", td.Kind))
	}
	if len(td.TypeParams) > 0 {
		return nil, skip("", "generic interfaces are not supported")
	}

	accessors := make([]models.AccessorDescriptor, 0, len(td.Methods))
	for _, m := range td.Methods {
		switch {
		case len(m.TypeParams) > 0:
			return nil, skip(m.Name, "generic methods are not supported")
		case !getterPattern.MatchString(m.Name):
			return nil, skip(m.Name, "only GetXxx accessors are supported")
		case len(m.Params) > 0:
			return nil, skip(m.Name, "accessors cannot take parameters")
		case m.Result == "":
			return nil, skip(m.Name, "accessors must return a value")
		case len(m.ExtraResults) > 0:
			return nil, skip(m.Name, fmt.Sprintf("unexpected extra results %s", strings.Join(m.ExtraResults, ", ")))
		}
		accessors = append(accessors, newAccessor(m))
	}

	return &models.InterfaceDescriptor{
		QualifiedName: td.QualifiedName,
		Package:       td.Package,
		PackageName:   td.PackageName,
		Name:          td.Name,
		Accessors:     accessors,
		Imports:       td.Imports,
		Source:        td.Source,
	}, nil
}

// newAccessor derives attribute names from a getter: GetOrderID -> orderID
func newAccessor(m models.MethodDescriptor) models.AccessorDescriptor {
	property := strings.TrimPrefix(m.Name, "Get")
	return models.AccessorDescriptor{
		Attribute: lowerFirst(property),
		Property:  property,
		Method:    m.Name,
		Type:      m.Result,
		Fallible:  len(m.Throws) > 0,
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
