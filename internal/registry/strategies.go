package registry

import (
	"fmt"
	"strings"

	"github.com/toyz/dtogen/internal/conversion"
	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
)

// StrategyRegistry holds conversion strategies in priority order
type StrategyRegistry struct {
	*OrderedRegistry[conversion.Strategy]
}

// StrategyMatch is the outcome of a successful Match
type StrategyMatch struct {
	Index    int
	Strategy conversion.Strategy
}

// NewStrategyRegistry creates a registry with the given strategies, first one
// having the highest priority
func NewStrategyRegistry(strategies ...conversion.Strategy) (*StrategyRegistry, error) {
	r := &StrategyRegistry{
		OrderedRegistry: NewOrderedRegistry[conversion.Strategy]("strategy"),
	}
	r.SetValidator(func(name string, value conversion.Strategy, _ []conversion.Strategy) error {
		if value == nil {
			return fmt.Errorf("strategy '%s' is nil", name)
		}
		return nil
	})

	for _, s := range strategies {
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultStrategies returns the built-in strategy set
func DefaultStrategies() *StrategyRegistry {
	r, err := NewStrategyRegistry(conversion.NewSliceStrategy())
	if err != nil {
		panic(err)
	}
	return r
}

// Add registers a strategy with the lowest priority so far
func (r *StrategyRegistry) Add(s conversion.Strategy) error {
	name := "<nil>"
	if s != nil {
		name = s.Name()
	}
	if err := r.Register(name, s); err != nil {
		return errors.WrapConfigurationError("strategy registry", "register", err)
	}
	return nil
}

// Match returns the first strategy recognizing expr. More than one recognizer
// means the registry is inconsistent and is reported as a configuration error.
func (r *StrategyRegistry) Match(expr string, renames models.RenameMap) (StrategyMatch, bool, error) {
	var (
		match   StrategyMatch
		matched []string
	)
	for i, s := range r.Values() {
		if !s.Recognize(expr, renames) {
			continue
		}
		if len(matched) == 0 {
			match = StrategyMatch{Index: i, Strategy: s}
		}
		matched = append(matched, s.Name())
	}

	switch len(matched) {
	case 0:
		return StrategyMatch{}, false, nil
	case 1:
		return match, true, nil
	default:
		err := errors.NewConfigurationError("conversion strategies", "at most one recognizer per type", expr)
		err.WithContext("strategies", strings.Join(matched, ", "))
		return StrategyMatch{}, false, err
	}
}
