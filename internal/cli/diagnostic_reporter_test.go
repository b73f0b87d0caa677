package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/dtogen/internal/errors"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	reporter := NewDiagnosticReporter(verbose)
	reporter.SetOutput(&out, &errOut)
	return reporter, &out, &errOut
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	reporter.ReportWarning("skipping interface github.com/acme/shop/model.Lookup")

	assert.Contains(t, errOut.String(), "! skipping interface github.com/acme/shop/model.Lookup")
}

func TestDiagnosticReporter_ReportConfigurationError(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	err := errors.NewConfigurationError("suffix", "pattern ^[A-Z][A-Za-z]*$", "1dto")
	err.WithSuggestions("Start the suffix with an upper-case letter")
	reporter.ReportError(err)

	output := errOut.String()
	assert.Contains(t, output, "Type: Configuration Error")
	assert.Contains(t, output, `Message: invalid suffix: expected pattern ^[A-Z][A-Za-z]*$, got "1dto"`)
	assert.Contains(t, output, "   Setting: suffix\n   Expected: pattern ^[A-Z][A-Za-z]*$\n   Actual: 1dto\n")
	assert.Contains(t, output, "   1. Start the suffix with an upper-case letter")
	assert.NotContains(t, output, "Error Chain:")
}

func TestDiagnosticReporter_ReportGenerationError(t *testing.T) {
	reporter, _, errOut := newTestReporter(true)

	err := errors.NewGenerationError("github.com/acme/shop/model.Order", "items", "no strategy recognizes []Item")
	err.WithCause(fmt.Errorf("template failed"))
	reporter.ReportError(err)

	output := errOut.String()
	assert.Contains(t, output, "Type: Code Generation Error")
	assert.Contains(t, output, "   Interface: github.com/acme/shop/model.Order\n   Attribute: items\n")
	assert.Contains(t, output, "Error Chain:")
	assert.Contains(t, output, "2. template failed")
}

func TestDiagnosticReporter_ReportPlainError(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	reporter.ReportError(fmt.Errorf("boom"))

	assert.Contains(t, errOut.String(), "Message: boom")
	assert.NotContains(t, errOut.String(), "Type:")
}

func TestDiagnosticReporter_ReportSuccess(t *testing.T) {
	reporter, out, _ := newTestReporter(false)

	reporter.ReportSuccess(GenerationSummary{
		RunID:             "run-1",
		PackagesProcessed: 2,
		Candidates:        3,
		Accepted:          2,
		Skipped:           1,
		GeneratedFiles:    []string{"model/order_dto_gen.go"},
	})

	output := out.String()
	assert.Contains(t, output, "Run run-1")
	assert.Contains(t, output, "Processed 2 packages")
	assert.Contains(t, output, "Generated 2 of 3 candidate interfaces")
	assert.Contains(t, output, "Skipped 1 interfaces")
	assert.Contains(t, output, "  - model/order_dto_gen.go")
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Interface", formatContextKey("interface"))
	assert.Equal(t, "Generated Name", formatContextKey("generated_name"))
}
