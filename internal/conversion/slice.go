package conversion

import (
	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/typeexpr"
)

// SliceStrategyName is the registry name of SliceStrategy
const SliceStrategyName = "slice"

// SliceStrategy handles []Q where Q is an interface being generated. The struct
// stores []*QDto; the getter copies into a fresh []Q because Go slices are not
// covariant.
type SliceStrategy struct{}

// NewSliceStrategy creates the slice strategy
func NewSliceStrategy() *SliceStrategy {
	return &SliceStrategy{}
}

// Name implements Strategy
func (s *SliceStrategy) Name() string {
	return SliceStrategyName
}

// Recognize implements Strategy
func (s *SliceStrategy) Recognize(expr string, renames models.RenameMap) bool {
	elem, ok := sliceElem(expr)
	return ok && renames.Has(elem)
}

// Render implements Strategy
func (s *SliceStrategy) Render(attr models.AccessorDescriptor, ctx RenderContext) (Rendering, error) {
	elem, ok := sliceElem(attr.Type)
	if !ok {
		err := errors.NewConfigurationError("conversion strategy", "a slice of a generated interface", attr.Type)
		err.WithContext("strategy", SliceStrategyName).WithContext("interface", ctx.Interface)
		return Rendering{}, err
	}
	generated, ok := ctx.Renames.Lookup(elem)
	if !ok {
		err := errors.NewConfigurationError("conversion strategy", "an element type with a generated name", elem)
		err.WithContext("strategy", SliceStrategyName).WithContext("interface", ctx.Interface)
		return Rendering{}, err
	}

	fieldType := ctx.Qualify("[]*" + generated)
	data := accessorData(attr, ctx, ctx.Qualify(attr.Type), fieldType)

	getter, err := ctx.Templates.Execute("slice-getter", data)
	if err != nil {
		return Rendering{}, errors.NewGenerationError(ctx.Interface, attr.Attribute, err.Error())
	}

	rendering := Rendering{FieldType: fieldType, Getter: getter}
	if ctx.Setters {
		setter, err := ctx.Templates.Execute("slice-setter", data)
		if err != nil {
			return Rendering{}, errors.NewGenerationError(ctx.Interface, attr.Attribute, err.Error())
		}
		rendering.Setter = setter
	}
	return rendering, nil
}

func sliceElem(expr string) (string, bool) {
	shape, err := typeexpr.ParseShape(expr)
	if err != nil {
		return "", false
	}
	return shape.SliceElem()
}
