// Package typeexpr works on the textual form of Go type expressions as printed
// by go/types with a nil qualifier, e.g. "[]github.com/acme/shop/model.Item".
package typeexpr

import (
	"regexp"
	"strings"

	"github.com/toyz/dtogen/internal/models"
)

// tokenPattern matches string literals (struct tags) as single tokens, then
// maximal runs that can form an identifier or a package-qualified identifier.
// Literal tokens are passed through untouched.
var tokenPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|` + "`[^`]*`" + `|[A-Za-z0-9_./\-]+`)

// QualifiedNames returns the distinct qualified identifiers in expr in order of
// first appearance.
func QualifiedNames(expr string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, tok := range tokenPattern.FindAllString(expr, -1) {
		if isLiteral(tok) || !IsQualified(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		names = append(names, tok)
	}
	return names
}

// IsQualified reports whether tok has the form <import path>.<Identifier>
func IsQualified(tok string) bool {
	pkg, name := SplitQualified(tok)
	return pkg != "" && isIdentifier(name)
}

// SplitQualified splits a qualified identifier into import path and type name.
// Unqualified input yields an empty path.
func SplitQualified(tok string) (pkgPath, name string) {
	lastSlash := strings.LastIndex(tok, "/")
	dot := strings.LastIndex(tok[lastSlash+1:], ".")
	if dot <= 0 {
		return "", tok
	}
	dot += lastSlash + 1
	return tok[:dot], tok[dot+1:]
}

// References returns the qualified names in expr that are keys of renames
func References(expr string, renames models.RenameMap) []string {
	var refs []string
	for _, name := range QualifiedNames(expr) {
		if renames.Has(name) {
			refs = append(refs, name)
		}
	}
	return refs
}

// Rewrite replaces every qualified name that is a key of renames with its
// generated name. Surrounding syntax is left untouched. Generated names are never
// keys, so rewriting twice is a no-op.
func Rewrite(expr string, renames models.RenameMap) string {
	return tokenPattern.ReplaceAllStringFunc(expr, func(tok string) string {
		if isLiteral(tok) {
			return tok
		}
		if generated, ok := renames.Lookup(tok); ok {
			return generated
		}
		return tok
	})
}

// Qualifier returns the source prefix ("pkg." or "") for an import path
type Qualifier func(pkgPath string) string

// Render converts a qualified type expression into Go source using q for every
// package-qualified identifier.
func Render(expr string, q Qualifier) string {
	return tokenPattern.ReplaceAllStringFunc(expr, func(tok string) string {
		if isLiteral(tok) || !IsQualified(tok) {
			return tok
		}
		pkg, name := SplitQualified(tok)
		return q(pkg) + name
	})
}

// Packages returns the distinct import paths referenced by expr
func Packages(expr string) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, name := range QualifiedNames(expr) {
		pkg, _ := SplitQualified(name)
		if !seen[pkg] {
			seen[pkg] = true
			paths = append(paths, pkg)
		}
	}
	return paths
}

func isLiteral(tok string) bool {
	return strings.HasPrefix(tok, `"`) || strings.HasPrefix(tok, "`")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
