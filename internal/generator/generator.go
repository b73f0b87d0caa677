// Package generator validates candidate interfaces and emits one mutable struct
// per accepted interface.
package generator

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/registry"
	"github.com/toyz/dtogen/internal/templates"
)

// Generator implements the CodeGenerator interface
type Generator struct {
	opts       models.Options
	logger     Logger
	strategies *registry.StrategyRegistry
	templates  *templates.TemplateRegistry
	reserved   []string
}

// Option configures a Generator
type Option func(*Generator)

// WithStrategies replaces the default conversion strategies
func WithStrategies(strategies *registry.StrategyRegistry) Option {
	return func(g *Generator) {
		g.strategies = strategies
	}
}

// WithReservedNames adds qualified names that generated types must not take,
// typically every type already declared in the loaded packages
func WithReservedNames(names ...string) Option {
	return func(g *Generator) {
		g.reserved = append(g.reserved, names...)
	}
}

// Result is the outcome of a successful run
type Result struct {
	Classes []models.GeneratedClass // in acceptance order
	Skipped []*errors.SkipError     // in candidate order
	Renames models.RenameMap        // accepted interfaces only
}

// SkipReport collects every skip reason in candidate order
func (r *Result) SkipReport() *errors.MultipleErrors {
	report := errors.NewMultipleErrors()
	for _, skip := range r.Skipped {
		report.Add(skip)
	}
	return report
}

// ValidateSuffix checks the configured suffix. It runs before any loading.
func ValidateSuffix(suffix string) error {
	return registry.ValidateSuffix(suffix)
}

// New creates a generator. An invalid suffix is rejected here.
func New(opts models.Options, logger Logger, options ...Option) (*Generator, error) {
	if opts.Suffix == "" {
		opts.Suffix = models.DefaultSuffix
	}
	if err := ValidateSuffix(opts.Suffix); err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = NopLogger{}
	}

	g := &Generator{
		opts:      opts,
		logger:    logger,
		templates: templates.NewTemplateRegistry(),
	}
	for _, option := range options {
		option(g)
	}
	if g.strategies == nil {
		g.strategies = registry.DefaultStrategies()
	}
	return g, nil
}

// Generate validates candidates and emits one class per accepted interface.
// Skipped interfaces are logged and reported in the result; any other error
// aborts the run without partial output.
func (g *Generator) Generate(ctx context.Context, candidates []models.TypeDescriptor) (*Result, error) {
	result := &Result{}

	var accepted []*models.InterfaceDescriptor
	reserved := append([]string(nil), g.reserved...)
	for _, td := range candidates {
		g.logger.Info("Found candidate %s", td.QualifiedName)
		reserved = append(reserved, td.QualifiedName)

		iface, skip := validateStructure(td)
		if skip != nil {
			g.skip(result, skip)
			continue
		}
		accepted = append(accepted, iface)
	}

	accepted, renames, err := g.resolve(accepted, reserved, result)
	if err != nil {
		return nil, err
	}
	result.Renames = renames
	g.logger.Debug("Accepted %d interfaces: %s", renames.Len(), strings.Join(renames.Keys(), ", "))

	for _, iface := range accepted {
		for _, attr := range iface.Accessors {
			if attr.Fallible {
				g.logger.Warn("%s.%s declares an error result; getters should not fail", iface.QualifiedName, attr.Method)
			}
		}
	}

	classes, err := g.emitAll(ctx, accepted, renames)
	if err != nil {
		return nil, err
	}
	result.Classes = classes
	return result, nil
}

// resolve drops interfaces with unresolvable accessor types until the accepted
// set is stable. Dropping a name only turns references to it into direct
// types, so the second pass settles. Interfaces that reference each other
// through unconvertible shapes are dropped together in the first pass.
func (g *Generator) resolve(accepted []*models.InterfaceDescriptor, reserved []string, result *Result) ([]*models.InterfaceDescriptor, models.RenameMap, error) {
	for {
		names := make([]string, len(accepted))
		for i, iface := range accepted {
			names[i] = iface.QualifiedName
		}
		renames, err := registry.BuildRenameMap(names, g.opts.Suffix, reserved...)
		if err != nil {
			return nil, models.RenameMap{}, err
		}

		kept := accepted[:0:0]
		for _, iface := range accepted {
			skip, err := g.checkTypes(iface, renames)
			if err != nil {
				return nil, models.RenameMap{}, err
			}
			if skip != nil {
				g.skip(result, skip)
				continue
			}
			kept = append(kept, iface)
		}

		if len(kept) == len(accepted) {
			return kept, renames, nil
		}
		accepted = kept
	}
}

// checkTypes rejects iface when an accessor type cannot be stored
func (g *Generator) checkTypes(iface *models.InterfaceDescriptor, renames models.RenameMap) (*errors.SkipError, error) {
	for _, attr := range iface.Accessors {
		cls, err := Classify(attr.Type, renames, g.strategies)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("%s.%s: %s is %s", iface.QualifiedName, attr.Method, attr.Type, cls.Kind)
		if cls.Kind == KindUnresolvable {
			skip := errors.NewSkipError(iface.QualifiedName, attr.Method, "type "+attr.Type+" cannot be converted")
			if iface.Source != "" {
				skip.WithLocation(errors.ParseLocation(iface.Source))
			}
			return skip, nil
		}
	}
	return nil, nil
}

// emitAll renders every accepted interface on up to Workers goroutines.
// Results keep acceptance order.
func (g *Generator) emitAll(ctx context.Context, accepted []*models.InterfaceDescriptor, renames models.RenameMap) ([]models.GeneratedClass, error) {
	e := &emitter{
		suffix:     g.opts.Suffix,
		setters:    g.opts.GenerateSetters,
		renames:    renames,
		strategies: g.strategies,
		templates:  g.templates,
	}

	classes := make([]models.GeneratedClass, len(accepted))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.opts.Workers)
	for i, iface := range accepted {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			class, err := e.emit(iface)
			if err != nil {
				return err
			}
			classes[i] = class
			g.logger.Debug("Generated %s", class.QualifiedName)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return classes, nil
}

func (g *Generator) skip(result *Result, err *errors.SkipError) {
	g.logger.Warn("%s", err.Error())
	result.Skipped = append(result.Skipped, err)
}
