// Package loader turns Go packages or YAML manifests into the type descriptors
// the generator consumes.
package loader

import (
	"context"

	"github.com/toyz/dtogen/internal/models"
)

// Loader produces candidate type descriptors
type Loader interface {
	Load(ctx context.Context) (*Result, error)
}

// Result is everything a loader found
type Result struct {
	Packages []string                // import paths of the loaded packages
	Types    []models.TypeDescriptor // candidate interfaces in declaration order
	Declared []string                // qualified names of all hand-written types
}

// Logger receives load warnings
type Logger interface {
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}
