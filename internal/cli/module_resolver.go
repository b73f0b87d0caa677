package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/dtogen/internal/utils"
)

// ModuleResolver maps import paths of the main module to directories
type ModuleResolver struct {
	startDir string
	parser   *utils.GoModParser
}

// NewModuleResolver creates a resolver that looks for go.mod from startDir upwards
func NewModuleResolver(startDir string) *ModuleResolver {
	return &ModuleResolver{
		startDir: startDir,
		parser:   utils.NewGoModParser(),
	}
}

// ResolveModule returns the module path and the directory holding go.mod
func (r *ModuleResolver) ResolveModule() (modulePath, root string, err error) {
	startDir := r.startDir
	if startDir == "" {
		if startDir, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve directory %s: %w", startDir, err)
	}

	goModPath, err := r.parser.FindGoModFile(absStart)
	if err != nil {
		return "", "", fmt.Errorf("failed to determine module: %w (consider using --output)", err)
	}
	modulePath, err = r.parser.ParseModuleName(goModPath)
	if err != nil {
		return "", "", err
	}
	return modulePath, filepath.Dir(goModPath), nil
}

// PackageDir returns the directory of a package of the main module
func (r *ModuleResolver) PackageDir(importPath string) (string, error) {
	modulePath, root, err := r.ResolveModule()
	if err != nil {
		return "", err
	}

	switch {
	case importPath == modulePath:
		return root, nil
	case strings.HasPrefix(importPath, modulePath+"/"):
		rel := strings.TrimPrefix(importPath, modulePath+"/")
		return filepath.Join(root, filepath.FromSlash(rel)), nil
	default:
		return "", fmt.Errorf("package %s is outside module %s", importPath, modulePath)
	}
}
