package models

// DefaultSuffix is appended to interface names when no suffix is configured
const DefaultSuffix = "Dto"

// Options controls a generation run
type Options struct {
	Suffix          string // appended to original names to form generated names
	GenerateSetters bool   // also emit one setter per accessor
	Workers         int    // concurrent emitters, values below 1 mean one
}

// GeneratedClass is the output for one accepted interface
type GeneratedClass struct {
	QualifiedName string // import path + "." + generated type name
	Package       string // import path of the package the source belongs to
	Name          string // generated type name
	Interface     string // qualified name of the implemented interface
	SourceText    string // complete, formatted Go source
}
