package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ImportManager assigns import aliases for one generated file and renders the
// import block. Paths must be added in a deterministic order for the aliases to
// be stable across runs.
type ImportManager struct {
	self     string            // import path of the package being generated
	aliases  map[string]string // path -> alias
	paths    map[string]string // alias -> path
	names    map[string]string // path -> package clause name
	reserved map[string]bool
}

// NewImportManager creates an import manager for the package at self. Reserved
// identifiers are never handed out as aliases.
func NewImportManager(self string, reserved ...string) *ImportManager {
	im := &ImportManager{
		self:     self,
		aliases:  make(map[string]string),
		paths:    make(map[string]string),
		names:    make(map[string]string),
		reserved: make(map[string]bool, len(reserved)),
	}
	for _, r := range reserved {
		im.reserved[r] = true
	}
	return im
}

// AddPackageImport registers path, whose package clause is name, and returns the
// alias it will be referenced by. The generated package itself needs no import.
func (im *ImportManager) AddPackageImport(path, name string) string {
	if path == "" || path == im.self {
		return ""
	}
	if alias, ok := im.aliases[path]; ok {
		return alias
	}

	alias := name
	for n := 2; im.taken(alias); n++ {
		alias = name + strconv.Itoa(n)
	}
	im.aliases[path] = alias
	im.paths[alias] = path
	im.names[path] = name
	return alias
}

// Alias returns the alias assigned to path
func (im *ImportManager) Alias(path string) (string, bool) {
	alias, ok := im.aliases[path]
	return alias, ok
}

// Aliases returns every assigned alias in sorted order
func (im *ImportManager) Aliases() []string {
	aliases := make([]string, 0, len(im.paths))
	for alias := range im.paths {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Qualify returns the source prefix for identifiers of path: empty for the
// generated package, "alias." otherwise. Unregistered paths panic because the
// emitter registers every referenced path before rendering.
func (im *ImportManager) Qualify(path string) string {
	if path == "" || path == im.self {
		return ""
	}
	alias, ok := im.aliases[path]
	if !ok {
		panic("import not registered: " + path)
	}
	return alias + "."
}

// GenerateImports renders the import block, standard library first
func (im *ImportManager) GenerateImports() string {
	if len(im.aliases) == 0 {
		return ""
	}

	var std, others []string
	for path := range im.aliases {
		if isStandardLibrary(path) {
			std = append(std, path)
		} else {
			others = append(others, path)
		}
	}
	sort.Strings(std)
	sort.Strings(others)

	var lines []string
	for _, path := range std {
		lines = append(lines, im.importLine(path))
	}
	if len(std) > 0 && len(others) > 0 {
		lines = append(lines, "")
	}
	for _, path := range others {
		lines = append(lines, im.importLine(path))
	}

	if len(lines) == 1 {
		return fmt.Sprintf("import %s\n", lines[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, line := range lines {
		if line == "" {
			result.WriteString("\n")
			continue
		}
		result.WriteString(fmt.Sprintf("\t%s\n", line))
	}
	result.WriteString(")\n")

	return result.String()
}

func (im *ImportManager) importLine(path string) string {
	if alias := im.aliases[path]; alias != im.names[path] {
		return fmt.Sprintf("%s %q", alias, path)
	}
	return strconv.Quote(path)
}

func (im *ImportManager) taken(alias string) bool {
	_, used := im.paths[alias]
	return used || im.reserved[alias]
}

// isStandardLibrary uses the goimports heuristic: no dot in the first element
func isStandardLibrary(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
