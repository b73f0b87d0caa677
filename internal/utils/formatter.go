package utils

import (
	"fmt"
	"go/parser"
	"go/token"

	"golang.org/x/tools/imports"
)

// formatOptions only reformats; the import block is already complete
var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// FormatGoCode formats Go source code the way goimports does, without
// adding or removing imports
func FormatGoCode(filename string, source []byte) ([]byte, error) {
	return imports.Process(filename, source, formatOptions)
}

// FormatGoCodeString formats Go source code from a string and returns a string
func FormatGoCodeString(filename, source string) (string, error) {
	formatted, err := FormatGoCode(filename, []byte(source))
	if err != nil {
		if parseErr := ValidateGoCode(source); parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
		}
		return source, err
	}
	return string(formatted), nil
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
