package models

import "strings"

// TypeKind classifies a named type handed over by a loader
type TypeKind string

const (
	// KindInterface is a pure method-set interface
	KindInterface TypeKind = "interface"
	// KindConstraint is an interface carrying a type set (usable only as a constraint)
	KindConstraint TypeKind = "constraint"
	// KindStruct is a struct type
	KindStruct TypeKind = "struct"
	// KindOther covers every remaining named type
	KindOther TypeKind = "other"
)

// TypeDescriptor is the raw, loader-provided description of a candidate type.
// The generator never inspects live type objects, only this data.
type TypeDescriptor struct {
	QualifiedName string            // import path + "." + Name
	Package       string            // import path of the declaring package
	PackageName   string            // package clause name of the declaring package
	Name          string            // simple type name
	Kind          TypeKind          // what kind of named type this is
	TypeParams    []string          // declared type parameters
	Methods       []MethodDescriptor // methods in declaration order
	Imports       map[string]string // import path -> package name for referenced packages
	Source        string            // file:line of the declaration, when known
}

// MethodDescriptor describes one method of a candidate type
type MethodDescriptor struct {
	Name         string   // method name
	Params       []string // parameter type expressions
	Result       string   // first result type expression, empty when the method returns nothing
	ExtraResults []string // further non-failure results
	Throws       []string // declared failure conditions (a trailing error result)
	TypeParams   []string // method-level type parameters
}

// InterfaceDescriptor is a candidate that passed structural validation
type InterfaceDescriptor struct {
	QualifiedName string
	Package       string
	PackageName   string
	Name          string
	Accessors     []AccessorDescriptor
	Imports       map[string]string
	Source        string
}

// AccessorDescriptor describes one getter of an accepted interface
type AccessorDescriptor struct {
	Attribute string // getter name without "Get", first letter lower-cased
	Property  string // getter name without "Get"
	Method    string // full getter name
	Type      string // declared result type expression
	Fallible  bool   // the getter also returns an error
}

// SetterName returns the name of the mutator paired with this accessor
func (a AccessorDescriptor) SetterName() string {
	return "Set" + a.Property
}

// PackageNameFor returns the package clause name for an import path referenced by
// the interface, falling back to a guess derived from the path itself.
func (d *InterfaceDescriptor) PackageNameFor(path string) string {
	if path == d.Package && d.PackageName != "" {
		return d.PackageName
	}
	if name, ok := d.Imports[path]; ok && name != "" {
		return name
	}
	return GuessPackageName(path)
}

// GuessPackageName derives the conventional package name from an import path:
// the last element, without a major version suffix or a "go-" prefix.
func GuessPackageName(path string) string {
	elems := strings.Split(path, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	if i := strings.LastIndex(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, "-go")
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return -1
		}
		return r
	}, name)
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
