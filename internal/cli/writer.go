package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/utils"
)

// PlannedFile is a generated class together with its destination
type PlannedFile struct {
	Path  string
	Class models.GeneratedClass
}

// Writer places generated classes on disk
type Writer struct {
	output   string
	resolver *ModuleResolver
}

// NewWriter creates a writer. With an output directory, files go to
// <output>/<import path>/<file>; otherwise next to the interface package.
func NewWriter(output string, resolver *ModuleResolver) *Writer {
	return &Writer{output: output, resolver: resolver}
}

// PathFor returns the destination of a generated class
func (w *Writer) PathFor(class models.GeneratedClass) (string, error) {
	filename := utils.GeneratedFileName(class.Name)
	if w.output != "" {
		return filepath.Join(w.output, filepath.FromSlash(class.Package), filename), nil
	}

	dir, err := w.resolver.PackageDir(class.Package)
	if err != nil {
		return "", errors.Wrap(errors.FileSystemErrorCode, "cannot place generated file for "+class.QualifiedName, err).
			WithSuggestions("Set --output to write outside the module")
	}
	return filepath.Join(dir, filename), nil
}

// Plan computes the destination of every class
func (w *Writer) Plan(classes []models.GeneratedClass) ([]PlannedFile, error) {
	planned := make([]PlannedFile, 0, len(classes))
	for _, class := range classes {
		path, err := w.PathFor(class)
		if err != nil {
			return nil, err
		}
		planned = append(planned, PlannedFile{Path: path, Class: class})
	}
	return planned, nil
}

// Write stores every planned file verbatim and returns the written paths
func (w *Writer) Write(files []PlannedFile) ([]string, error) {
	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
			return written, errors.WrapFileSystemError("create directory for", f.Path, err)
		}
		if err := os.WriteFile(f.Path, []byte(f.Class.SourceText), 0644); err != nil {
			return written, errors.WrapFileSystemError("write", f.Path, err)
		}
		written = append(written, f.Path)
	}
	return written, nil
}
