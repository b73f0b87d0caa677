package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/generator"
	"github.com/toyz/dtogen/internal/loader"
	"github.com/toyz/dtogen/internal/utils"
)

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	RunID             string
	PackagesProcessed int
	Candidates        int
	Accepted          int
	Skipped           int
	GeneratedFiles    []string
	Duration          time.Duration
}

// Stats returns the summary in the form DiagnosticSystem.Summary prints
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Run":                s.RunID,
		"Packages processed": s.PackagesProcessed,
		"Candidates":         s.Candidates,
		"Generated":          s.Accepted,
		"Skipped":            s.Skipped,
		"Files":              len(s.GeneratedFiles),
	}
}

// Generator coordinates the CLI generation process: load, generate, write
type Generator struct {
	config      Config
	diagnostics *utils.DiagnosticSystem
	resolver    *ModuleResolver
	writer      *Writer
	newLoader   func(Config) loader.Loader
	summary     GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) *Generator {
	resolver := NewModuleResolver(config.Dir)
	g := &Generator{
		config:      config,
		diagnostics: diagnostics,
		resolver:    resolver,
		writer:      NewWriter(config.Output, resolver),
	}
	g.newLoader = g.defaultLoader
	return g
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run generates and writes every file
func (g *Generator) Run(ctx context.Context) error {
	planned, err := g.Plan(ctx)
	if err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Writing")
	for _, f := range planned {
		g.diagnostics.PhaseProgress("Writing " + f.Path)
	}
	written, err := g.writer.Write(planned)
	if err != nil {
		return err
	}
	g.summary.GeneratedFiles = written
	return nil
}

// Check regenerates in memory and fails with a StaleError when files on disk
// are missing, differ, or no longer have a source interface
func (g *Generator) Check(ctx context.Context) error {
	planned, err := g.Plan(ctx)
	if err != nil {
		return err
	}

	expected := make(map[string]bool, len(planned))
	var stale []string
	for _, f := range planned {
		expected[absPath(f.Path)] = true

		current, err := os.ReadFile(f.Path)
		if err != nil || !bytes.Equal(current, []byte(f.Class.SourceText)) {
			stale = append(stale, f.Path)
		}
	}

	dirs, err := g.managedDirectories(planned)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		existing, err := findGeneratedFiles(dir)
		if err != nil {
			return err
		}
		for _, path := range existing {
			if !expected[absPath(path)] {
				stale = append(stale, path)
			}
		}
	}

	if len(stale) > 0 {
		sort.Strings(stale)
		return errors.NewStaleError(stale)
	}
	return nil
}

// Plan loads, validates and generates without touching the disk
func (g *Generator) Plan(ctx context.Context) ([]PlannedFile, error) {
	start := time.Now()
	g.summary = GenerationSummary{RunID: uuid.NewString()}
	g.diagnostics.Debug("Run %s", g.summary.RunID)

	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	g.diagnostics.PhaseHeader("Loading")
	loaded, err := g.newLoader(g.config).Load(ctx)
	if err != nil {
		return nil, err
	}
	g.summary.PackagesProcessed = len(loaded.Packages)
	g.summary.Candidates = len(loaded.Types)
	g.diagnostics.PhaseItem("Loaded " + plural(len(loaded.Types), "candidate interface") + " from " + plural(len(loaded.Packages), "package"))

	g.diagnostics.PhaseHeader("Generating")
	gen, err := generator.New(g.config.Options(), g.diagnostics, generator.WithReservedNames(loaded.Declared...))
	if err != nil {
		return nil, err
	}
	result, err := gen.Generate(ctx, loaded.Types)
	if err != nil {
		return nil, err
	}
	g.summary.Accepted = len(result.Classes)
	g.summary.Skipped = len(result.Skipped)
	g.diagnostics.PhaseItem("Generated " + plural(len(result.Classes), "type"))
	if report := result.SkipReport(); !report.IsEmpty() {
		g.diagnostics.PhaseItem("Skipped " + plural(report.Count(), "interface"))
	}
	g.listPackages(loaded.Packages, result)

	planned, err := g.writer.Plan(result.Classes)
	if err != nil {
		return nil, err
	}
	g.summary.Duration = time.Since(start)
	return planned, nil
}

// listPackages prints, per package, what each candidate became
func (g *Generator) listPackages(packages []string, result *generator.Result) {
	entries := make(map[string][]string, len(packages))
	for _, class := range result.Classes {
		_, name := splitQualified(class.Interface)
		entries[class.Package] = append(entries[class.Package], name+" -> "+class.Name)
	}
	for _, skip := range result.Skipped {
		pkg, name := splitQualified(skip.Interface)
		reason := skip.Reason
		if skip.Method != "" {
			reason = skip.Method + ": " + reason
		}
		entries[pkg] = append(entries[pkg], name+" skipped ("+reason+")")
	}

	for _, pkg := range packages {
		if len(entries[pkg]) == 0 {
			continue
		}
		g.diagnostics.Category(pkg)
		g.diagnostics.Indent()
		for _, entry := range entries[pkg] {
			g.diagnostics.List(entry)
		}
		g.diagnostics.Unindent()
	}
}

// managedDirectories returns the directories that may hold files from this
// run: planned targets, the output tree and, when loading Go packages, the
// package directories themselves
func (g *Generator) managedDirectories(planned []PlannedFile) ([]string, error) {
	var patterns []string
	if g.config.Manifest == "" {
		patterns = g.config.Packages
	}
	scanned, err := NewCleaner(g.config.Dir, g.config.Output).Directories(patterns)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, f := range planned {
		dir := filepath.Dir(f.Path)
		if !seen[absPath(dir)] {
			seen[absPath(dir)] = true
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range scanned {
		if !seen[absPath(dir)] {
			seen[absPath(dir)] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

func splitQualified(name string) (string, string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (g *Generator) defaultLoader(config Config) loader.Loader {
	if config.Manifest != "" {
		path := config.Manifest
		if !filepath.IsAbs(path) && config.Dir != "" {
			path = filepath.Join(config.Dir, path)
		}
		return loader.NewManifestLoader(path)
	}
	return loader.NewGoLoader(config.Dir, config.Packages, g.diagnostics)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
