package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/templates"
	"github.com/toyz/dtogen/internal/typeexpr"
)

const (
	pkg  = "github.com/acme/shop/model"
	item = pkg + ".Item"
)

func testContext(setters bool) RenderContext {
	renames := models.NewRenameMap(models.RenameEntry{Original: item, Generated: item + "Dto"})
	return RenderContext{
		Interface: pkg + ".Order",
		TypeName:  "OrderDto",
		Receiver:  "o",
		Field:     "items",
		Renames:   renames,
		Setters:   setters,
		Templates: templates.NewTemplateRegistry(),
		Qualify: func(expr string) string {
			return typeexpr.Render(expr, func(path string) string {
				if path == pkg {
					return ""
				}
				return models.GuessPackageName(path) + "."
			})
		},
	}
}

func itemsAccessor() models.AccessorDescriptor {
	return models.AccessorDescriptor{
		Attribute: "items",
		Property:  "Items",
		Method:    "GetItems",
		Type:      "[]" + item,
	}
}

func TestSliceStrategy_Recognize(t *testing.T) {
	s := NewSliceStrategy()
	renames := testContext(false).Renames

	tests := []struct {
		expr string
		want bool
	}{
		{"[]" + item, true},
		{item, false},
		{"[]*" + item, false},
		{"[][]" + item, false},
		{"map[string]" + item, false},
		{"[]" + pkg + ".Other", false},
		{"[]string", false},
		{"func() []" + item, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Recognize(tt.expr, renames))
		})
	}
}

func TestSliceStrategy_Render(t *testing.T) {
	s := NewSliceStrategy()

	r, err := s.Render(itemsAccessor(), testContext(true))
	require.NoError(t, err)

	assert.Equal(t, "[]*ItemDto", r.FieldType)
	assert.Contains(t, r.Getter, "func (o *OrderDto) GetItems() []Item {")
	assert.Contains(t, r.Getter, "out := make([]Item, len(o.items))")
	assert.Contains(t, r.Setter, "func (o *OrderDto) SetItems(items []*ItemDto) {")
}

func TestSliceStrategy_RenderWithoutSetters(t *testing.T) {
	r, err := NewSliceStrategy().Render(itemsAccessor(), testContext(false))
	require.NoError(t, err)
	assert.Empty(t, r.Setter)
}

func TestSliceStrategy_RenderForeignPackage(t *testing.T) {
	ctx := testContext(false)
	other := "github.com/acme/billing/invoice.Line"
	ctx.Renames = models.NewRenameMap(models.RenameEntry{Original: other, Generated: other + "Dto"})

	attr := itemsAccessor()
	attr.Type = "[]" + other

	r, err := NewSliceStrategy().Render(attr, ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]*invoice.LineDto", r.FieldType)
	assert.Contains(t, r.Getter, "GetItems() []invoice.Line {")
}

func TestSliceStrategy_RenderMisuse(t *testing.T) {
	s := NewSliceStrategy()

	tests := []struct {
		name string
		expr string
	}{
		{"not a slice", "map[string]" + item},
		{"element not generated", "[]" + pkg + ".Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := itemsAccessor()
			attr.Type = tt.expr

			_, err := s.Render(attr, testContext(false))
			require.Error(t, err)

			var cfgErr *errors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "conversion strategy", cfgErr.Setting)
		})
	}
}
