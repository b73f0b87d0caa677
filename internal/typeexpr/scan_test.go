package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/dtogen/internal/models"
)

const (
	item     = "github.com/acme/shop/model.Item"
	customer = "github.com/acme/shop/model.Customer"
)

func testRenames() models.RenameMap {
	return models.NewRenameMap(
		models.RenameEntry{Original: item, Generated: item + "Dto"},
		models.RenameEntry{Original: customer, Generated: customer + "Dto"},
	)
}

func TestQualifiedNames(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"builtin", "string", nil},
		{"stdlib", "time.Time", []string{"time.Time"}},
		{"slice", "[]" + item, []string{item}},
		{"map dedup", "map[" + item + "]" + item, []string{item}},
		{"map two names", "map[time.Duration][]" + customer, []string{"time.Duration", customer}},
		{"versioned path", "*gopkg.in/yaml.v3.Node", []string{"gopkg.in/yaml.v3.Node"}},
		{"dashed path", "github.com/go-foo/bar-baz.Thing", []string{"github.com/go-foo/bar-baz.Thing"}},
		{"array length", "[4]int", nil},
		{"func", "func(context.Context) error", []string{"context.Context"}},
		{"struct tag", `struct{Name string "doc:\"see fmt.Stringer\""}`, nil},
		{"raw struct tag", "struct{At time.Time `doc:\"" + item + "\"`}", []string{"time.Time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualifiedNames(tt.expr))
		})
	}
}

func TestSplitQualified(t *testing.T) {
	pkg, name := SplitQualified(item)
	assert.Equal(t, "github.com/acme/shop/model", pkg)
	assert.Equal(t, "Item", name)

	pkg, name = SplitQualified("gopkg.in/yaml.v3.Node")
	assert.Equal(t, "gopkg.in/yaml.v3", pkg)
	assert.Equal(t, "Node", name)

	pkg, name = SplitQualified("string")
	assert.Empty(t, pkg)
	assert.Equal(t, "string", name)
}

func TestRewrite(t *testing.T) {
	renames := testRenames()

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"bare", item, item + "Dto"},
		{"slice", "[]" + item, "[]" + item + "Dto"},
		{"map", "map[string]" + customer, "map[string]" + customer + "Dto"},
		{"untouched", "[]time.Time", "[]time.Time"},
		{"prefix is not a match", "github.com/acme/shop/model.ItemKind", "github.com/acme/shop/model.ItemKind"},
		{"builtin", "string", "string"},
		{"struct tag", `struct{I ` + item + ` "ref:\"` + item + `\""}`, `struct{I ` + item + `Dto "ref:\"` + item + `\""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rewrite(tt.expr, renames)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Rewrite(got, renames), "rewrite must be idempotent")
		})
	}
}

func TestRewrite_DisjointIsVerbatim(t *testing.T) {
	renames := testRenames()
	for _, expr := range []string{"int", "[]byte", "map[string]interface{}", "*time.Location", "func() error"} {
		assert.Empty(t, References(expr, renames))
		assert.Equal(t, expr, Rewrite(expr, renames))
	}
}

func TestRender(t *testing.T) {
	q := func(pkg string) string {
		if pkg == "github.com/acme/shop/model" {
			return ""
		}
		return models.GuessPackageName(pkg) + "."
	}

	assert.Equal(t, "[]Item", Render("[]"+item, q))
	assert.Equal(t, "map[string]time.Time", Render("map[string]time.Time", q))
	assert.Equal(t, "*yaml.Node", Render("*gopkg.in/yaml.v3.Node", q))
	assert.Equal(t, "string", Render("string", q))
	assert.Equal(t, `struct{At time.Time "doc:\"see fmt.Stringer\""}`,
		Render(`struct{At time.Time "doc:\"see fmt.Stringer\""}`, q))
}

func TestPackages(t *testing.T) {
	got := Packages("map[time.Duration][]" + item + "|" + customer)
	assert.Equal(t, []string{"time", "github.com/acme/shop/model"}, got)

	assert.Empty(t, Packages(`struct{Name string "doc:\"see fmt.Stringer\""}`))
}

func TestReferences_IgnoresStructTags(t *testing.T) {
	expr := `struct{Name string "ref:\"` + item + `\""}`
	assert.Empty(t, References(expr, testRenames()))
}
