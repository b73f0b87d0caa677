package generator

import (
	"context"

	"github.com/toyz/dtogen/internal/models"
)

// CodeGenerator turns loaded type descriptors into generated struct sources
type CodeGenerator interface {
	Generate(ctx context.Context, candidates []models.TypeDescriptor) (*Result, error)
}

// Logger receives warnings for skipped interfaces and progress messages.
// utils.DiagnosticSystem satisfies it.
type Logger interface {
	Warn(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// NopLogger discards every message
type NopLogger struct{}

func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Debug(string, ...interface{}) {}
