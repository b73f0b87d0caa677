package loader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
)

// Manifest is the YAML form of loader output, for inputs that are not Go
// packages or for describing interfaces by hand
type Manifest struct {
	Types    []ManifestType `yaml:"types"`
	Declared []string       `yaml:"declared,omitempty"`
}

// ManifestType describes one candidate type
type ManifestType struct {
	Package     string            `yaml:"package"`
	PackageName string            `yaml:"package_name,omitempty"`
	Name        string            `yaml:"name"`
	Kind        models.TypeKind   `yaml:"kind,omitempty"`
	TypeParams  []string          `yaml:"type_params,omitempty"`
	Imports     map[string]string `yaml:"imports,omitempty"`
	Source      string            `yaml:"source,omitempty"`
	Methods     []ManifestMethod  `yaml:"methods"`
}

// ManifestMethod describes one method
type ManifestMethod struct {
	Name         string   `yaml:"name"`
	Params       []string `yaml:"params,omitempty"`
	Result       string   `yaml:"result,omitempty"`
	ExtraResults []string `yaml:"extra_results,omitempty"`
	Throws       []string `yaml:"throws,omitempty"`
	TypeParams   []string `yaml:"type_params,omitempty"`
}

// ManifestLoader reads candidates from a YAML manifest file
type ManifestLoader struct {
	path string
}

// NewManifestLoader creates a loader for the manifest at path
func NewManifestLoader(path string) *ManifestLoader {
	return &ManifestLoader{path: path}
}

// Load implements Loader
func (l *ManifestLoader) Load(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", l.path, err)
	}
	manifest, err := ParseManifest(content)
	if err != nil {
		return nil, errors.WrapLoadError(l.path, err)
	}
	return manifest.Result(), nil
}

// ParseManifest decodes and validates a manifest
func ParseManifest(content []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	for i, t := range manifest.Types {
		if t.Package == "" || t.Name == "" {
			return nil, fmt.Errorf("type #%d: package and name are required", i+1)
		}
		for j, m := range t.Methods {
			if m.Name == "" {
				return nil, fmt.Errorf("type %s.%s: method #%d has no name", t.Package, t.Name, j+1)
			}
		}
	}
	return &manifest, nil
}

// Result converts the manifest into loader output. Missing kinds default to
// interface and missing package names are derived from the import path.
func (m *Manifest) Result() *Result {
	result := &Result{Declared: append([]string(nil), m.Declared...)}
	seen := make(map[string]bool)

	for _, t := range m.Types {
		td := models.TypeDescriptor{
			QualifiedName: t.Package + "." + t.Name,
			Package:       t.Package,
			PackageName:   t.PackageName,
			Name:          t.Name,
			Kind:          t.Kind,
			TypeParams:    t.TypeParams,
			Imports:       t.Imports,
			Source:        t.Source,
		}
		if td.Kind == "" {
			td.Kind = models.KindInterface
		}
		if td.PackageName == "" {
			td.PackageName = models.GuessPackageName(t.Package)
		}
		for _, mm := range t.Methods {
			td.Methods = append(td.Methods, models.MethodDescriptor(mm))
		}

		if !seen[t.Package] {
			seen[t.Package] = true
			result.Packages = append(result.Packages, t.Package)
		}
		result.Declared = append(result.Declared, td.QualifiedName)
		result.Types = append(result.Types, td)
	}
	return result
}
