package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	d.SetColors(false)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticWarn)

	d.Error("broken %s", "thing")
	d.Warn("careful")
	d.Info("hidden")
	d.Debug("hidden too")

	assert.Contains(t, errOut.String(), "[ERROR] broken thing")
	assert.Contains(t, out.String(), "[WARN] careful")
	assert.NotContains(t, out.String(), "hidden")
}

func TestDiagnosticSystem_Silent(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticSilent)

	d.Error("nope")
	d.Summary("Summary", map[string]interface{}{"a": 1})

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestDiagnosticSystem_SummaryIsSorted(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Summary("Summary", map[string]interface{}{"skipped": 1, "accepted": 2, "files": 2})

	assert.Equal(t, "\nSummary\n   accepted: 2\n   files: 2\n   skipped: 1\n\n", out.String())
}

func TestDiagnosticSystem_Indent(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Indent()
	d.Info("nested")
	d.Unindent()
	d.Unindent()
	d.Info("top")

	assert.Contains(t, out.String(), "  [INFO] nested\n")
	assert.Contains(t, out.String(), "\n[INFO] top\n")
}

func TestDiagnosticSystem_CategoriesAreVerbose(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Category("github.com/acme/shop/model")
	d.List("Order")
	assert.Empty(t, out.String())

	d, out, _ = newTestDiagnostics(DiagnosticVerbose)
	d.Category("github.com/acme/shop/model")
	d.Indent()
	d.List("Order -> %s", "OrderDto")
	d.Unindent()

	assert.Equal(t, "[github.com/acme/shop/model]\n  - Order -> OrderDto\n", out.String())
	assert.Equal(t, DiagnosticVerbose, d.Level())
}
