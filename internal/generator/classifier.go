package generator

import (
	"github.com/toyz/dtogen/internal/conversion"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/registry"
	"github.com/toyz/dtogen/internal/typeexpr"
)

// ClassificationKind says how an accessor type is stored in the generated struct
type ClassificationKind int

const (
	// KindDirect types are stored as declared, or rewritten when the type is a
	// bare generated interface
	KindDirect ClassificationKind = iota
	// KindStrategy types need a conversion strategy
	KindStrategy
	// KindUnresolvable types reference generated interfaces in a shape no strategy handles
	KindUnresolvable
)

func (k ClassificationKind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindStrategy:
		return "strategy"
	default:
		return "unresolvable"
	}
}

// Classification is the result of Classify
type Classification struct {
	Kind ClassificationKind
	// Reference is set for direct types that are exactly one generated interface
	Reference string
	// Strategy and Index are set for strategy types
	Strategy conversion.Strategy
	Index    int
}

// Classify decides how expr is stored given the current renames
func Classify(expr string, renames models.RenameMap, strategies *registry.StrategyRegistry) (Classification, error) {
	refs := typeexpr.References(expr, renames)
	if len(refs) == 0 {
		return Classification{Kind: KindDirect}, nil
	}
	if len(refs) == 1 && refs[0] == expr {
		return Classification{Kind: KindDirect, Reference: expr}, nil
	}

	match, ok, err := strategies.Match(expr, renames)
	if err != nil {
		return Classification{}, err
	}
	if ok {
		return Classification{Kind: KindStrategy, Strategy: match.Strategy, Index: match.Index}, nil
	}
	return Classification{Kind: KindUnresolvable}, nil
}
