package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
)

func newTestGenerator(t *testing.T, opts models.Options) (*Generator, *recordingLogger) {
	t.Helper()
	logger := &recordingLogger{}
	g, err := New(opts, logger)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g, logger
}

func TestNew_DefaultsSuffix(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})
	if g.opts.Suffix != models.DefaultSuffix {
		t.Errorf("expected default suffix %q, got %q", models.DefaultSuffix, g.opts.Suffix)
	}
	if g.opts.Workers != 1 {
		t.Errorf("expected one worker, got %d", g.opts.Workers)
	}
}

func TestNew_RejectsInvalidSuffix(t *testing.T) {
	_, err := New(models.Options{Suffix: "1dto"}, nil)
	if err == nil {
		t.Fatal("expected an error for suffix 1dto")
	}

	var cfgErr *errors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected a ConfigurationError, got %T", err)
	}
	if cfgErr.Setting != "suffix" {
		t.Errorf("expected setting 'suffix', got %q", cfgErr.Setting)
	}
}

func TestGenerate_SimpleInterface(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{GenerateSetters: true})

	result, err := g.Generate(context.Background(), []models.TypeDescriptor{
		iface("Item", getter("GetName", "string")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(result.Classes))
	}

	class := result.Classes[0]
	if class.QualifiedName != pkg+".ItemDto" {
		t.Errorf("unexpected qualified name %s", class.QualifiedName)
	}
	if class.Interface != pkg+".Item" {
		t.Errorf("unexpected interface %s", class.Interface)
	}

	expected := `// Code generated by dtogen. DO NOT EDIT.

package model

// ItemDto is a mutable implementation of Item.
type ItemDto struct {
	name string
}

var _ Item = (*ItemDto)(nil)

// GetName returns name.
func (i *ItemDto) GetName() string {
	return i.name
}

// SetName sets name.
func (i *ItemDto) SetName(name string) {
	i.name = name
}
`
	if class.SourceText != expected {
		t.Errorf("unexpected source:\n%s\nwant:\n%s", class.SourceText, expected)
	}
}

func TestGenerate_ContainerConversion(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})

	result, err := g.Generate(context.Background(), []models.TypeDescriptor{
		iface("A", getter("GetName", "string")),
		iface("B", getter("GetAs", "[]"+pkg+".A")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, ok := classByName(result.Classes, "BDto")
	if !ok {
		t.Fatal("BDto was not generated")
	}
	for _, want := range []string{
		"as []*ADto",
		"func (b *BDto) GetAs() []A {",
		"out := make([]A, len(b.as))",
		"var _ B = (*BDto)(nil)",
	} {
		if !strings.Contains(b.SourceText, want) {
			t.Errorf("expected %q in:\n%s", want, b.SourceText)
		}
	}
}

func TestGenerate_RejectionTransparency(t *testing.T) {
	g, logger := newTestGenerator(t, models.Options{})

	foo := iface("A", models.MethodDescriptor{Name: "Foo", Params: []string{"int"}, Result: "string"})
	result, err := g.Generate(context.Background(), []models.TypeDescriptor{
		foo,
		iface("B", getter("GetA", pkg+".A"), getter("GetAs", "[]"+pkg+".A")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Skipped) != 1 || result.Skipped[0].Interface != pkg+".A" {
		t.Fatalf("expected A to be skipped, got %v", result.Skipped)
	}
	if result.Renames.Has(pkg + ".A") {
		t.Error("rejected interface must not be renamed")
	}
	if len(logger.warnings) != 1 || !strings.Contains(logger.warnings[0], "Foo") {
		t.Errorf("expected one warning naming Foo, got %v", logger.warnings)
	}

	b, ok := classByName(result.Classes, "BDto")
	if !ok {
		t.Fatal("BDto was not generated")
	}
	for _, want := range []string{"a  A\n", "as []A\n", "return b.as\n"} {
		if !strings.Contains(b.SourceText, want) {
			t.Errorf("expected %q in:\n%s", want, b.SourceText)
		}
	}
	if strings.Contains(b.SourceText, "ADto") {
		t.Errorf("rejected interface leaked into output:\n%s", b.SourceText)
	}
}

func TestGenerate_UnresolvableIsSkipped(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})

	result, err := g.Generate(context.Background(), []models.TypeDescriptor{
		iface("Item", getter("GetName", "string")),
		iface("Catalog", getter("GetByID", "map[string]"+pkg+".Item")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Classes) != 1 || result.Classes[0].Name != "ItemDto" {
		t.Fatalf("expected only ItemDto, got %d classes", len(result.Classes))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Method != "GetByID" {
		t.Fatalf("expected Catalog.GetByID to be skipped, got %v", result.Skipped)
	}
	if report := result.SkipReport(); report.Count() != 1 || !strings.Contains(report.Error(), "GetByID") {
		t.Errorf("skip report should name GetByID, got %v", report)
	}
}

func TestGenerate_MutuallyUnresolvableAreDroppedTogether(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})

	result, err := g.Generate(context.Background(), []models.TypeDescriptor{
		iface("A", getter("GetBs", "map[string]"+pkg+".B")),
		iface("B", getter("GetAs", "map[string]"+pkg+".A")),
		iface("C", getter("GetAs", "[]"+pkg+".A")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Skipped) != 2 || result.Skipped[0].Interface != pkg+".A" || result.Skipped[1].Interface != pkg+".B" {
		t.Fatalf("expected A and B to be skipped, got %v", result.Skipped)
	}
	if len(result.Classes) != 1 || result.Classes[0].Name != "CDto" {
		t.Fatalf("expected only CDto, got %d classes", len(result.Classes))
	}
	if !strings.Contains(result.Classes[0].SourceText, "as []A\n") {
		t.Errorf("dropped element type should be stored directly:\n%s", result.Classes[0].SourceText)
	}
}

func TestGenerate_SettersToggle(t *testing.T) {
	candidates := []models.TypeDescriptor{
		iface("Item", getter("GetName", "string")),
		iface("Order", getter("GetItems", "[]"+pkg+".Item"), getter("GetItem", pkg+".Item")),
	}

	for _, setters := range []bool{false, true} {
		g, _ := newTestGenerator(t, models.Options{GenerateSetters: setters})
		result, err := g.Generate(context.Background(), candidates)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		order, _ := classByName(result.Classes, "OrderDto")
		for _, want := range []string{"SetItems(items []*ItemDto)", "SetItem(item *ItemDto)"} {
			if got := strings.Contains(order.SourceText, want); got != setters {
				t.Errorf("setters=%v: contains %q = %v", setters, want, got)
			}
		}
		if strings.Contains(order.SourceText, "func (o *OrderDto) Set") != setters {
			t.Errorf("setters=%v: unexpected setter presence:\n%s", setters, order.SourceText)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	candidates := []models.TypeDescriptor{
		iface("Item", getter("GetName", "string"), getter("GetCreated", "time.Time")),
		iface("Order", getter("GetItems", "[]"+pkg+".Item")),
		ifaceIn(billing, "billing", "Invoice", getter("GetOrder", pkg+".Order"), getter("GetLines", "[]"+pkg+".Item")),
	}

	var previous []models.GeneratedClass
	for _, workers := range []int{1, 4, 1} {
		g, _ := newTestGenerator(t, models.Options{Workers: workers, GenerateSetters: true})
		result, err := g.Generate(context.Background(), candidates)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Classes) != 3 {
			t.Fatalf("expected 3 classes, got %d", len(result.Classes))
		}
		for i, name := range []string{"ItemDto", "OrderDto", "InvoiceDto"} {
			if result.Classes[i].Name != name {
				t.Errorf("class %d: expected %s, got %s", i, name, result.Classes[i].Name)
			}
		}
		if previous != nil {
			for i := range previous {
				if previous[i] != result.Classes[i] {
					t.Errorf("run with %d workers differs for %s", workers, previous[i].Name)
				}
			}
		}
		previous = result.Classes
	}
}

func TestGenerate_DirectTypesAreVerbatim(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})

	result, err := g.Generate(context.Background(), []models.TypeDescriptor{
		iface("Item", getter("GetName", "string")),
		iface("Profile",
			getter("GetTags", "map[string][]string"),
			getter("GetCreated", "*time.Time"),
			getter("GetLimits", "[4]int"),
			getter("GetHook", "func(string) error"),
		),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, _ := classByName(result.Classes, "ProfileDto")
	for _, want := range []string{
		"GetTags() map[string][]string {",
		"GetCreated() *time.Time {",
		"GetLimits() [4]int {",
		"GetHook() func(string) error {",
		"import \"time\"",
	} {
		if !strings.Contains(profile.SourceText, want) {
			t.Errorf("expected %q in:\n%s", want, profile.SourceText)
		}
	}
}

func TestGenerate_NoDoubleSuffix(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})

	_, err := g.Generate(context.Background(), []models.TypeDescriptor{
		iface("Order", getter("GetID", "string")),
		iface("OrderDto", getter("GetID", "string")),
	})
	var cfgErr *errors.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected a ConfigurationError, got %v", err)
	}
}

func TestGenerate_ReservedNames(t *testing.T) {
	logger := &recordingLogger{}
	g, err := New(models.Options{}, logger, WithReservedNames(pkg+".ItemDto"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = g.Generate(context.Background(), []models.TypeDescriptor{
		iface("Item", getter("GetName", "string")),
	})
	if err == nil {
		t.Fatal("expected collision with a declared type")
	}
}

func TestGenerate_LogsCandidates(t *testing.T) {
	g, logger := newTestGenerator(t, models.Options{})

	_, err := g.Generate(context.Background(), []models.TypeDescriptor{
		iface("Item", getter("GetName", "string")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger.infos) == 0 || !strings.Contains(logger.infos[0], pkg+".Item") {
		t.Errorf("expected the candidate to be logged, got %v", logger.infos)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := g.Generate(ctx, []models.TypeDescriptor{
		iface("Item", getter("GetName", "string")),
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if result != nil {
		t.Error("no partial result may be returned")
	}
}

func TestGenerate_Empty(t *testing.T) {
	g, _ := newTestGenerator(t, models.Options{})

	result, err := g.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Classes) != 0 || len(result.Skipped) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}
