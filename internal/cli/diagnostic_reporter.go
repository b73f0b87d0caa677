package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/dtogen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects standard and error output
func (r *DiagnosticReporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.errOut, "=============================\n\n")

	var dtoErr errors.DtoError
	if errors.As(err, &dtoErr) {
		r.reportDtoError(dtoErr)
	} else {
		fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())
	}

	fmt.Fprintf(r.errOut, "For more help:\n")
	fmt.Fprintf(r.errOut, "  - Run with --verbose for more detailed output\n\n")
}

// reportDtoError reports an error with full context and suggestions
func (r *DiagnosticReporter) reportDtoError(err errors.DtoError) {
	r.printErrorHeader(err.ErrorCode())

	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.errOut, "Location: %s\n\n", loc.String())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printErrorHeader prints a formatted error header based on error type
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.GenerationErrorCode:
		errorTypeStr = "Code Generation Error"
	case errors.TemplateErrorCode:
		errorTypeStr = "Template Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.LoadErrorCode:
		errorTypeStr = "Load Error"
	case errors.StaleErrorCode:
		errorTypeStr = "Stale Generated Code"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	// Print important context items first
	importantKeys := []string{"interface", "attribute", "method", "setting", "expected", "actual"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	var rest []string
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.errOut, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.errOut, "\n")
}

// printErrorChain prints every wrapped cause in verbose mode
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.errOut, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.errOut, "    %d. %s\n", level, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
		level++
	}
	fmt.Fprintf(r.errOut, "\n")
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Fprintf(r.out, "\nCode Generation Completed Successfully!\n")
	fmt.Fprintf(r.out, "=======================================\n\n")
	fmt.Fprintf(r.out, "Run %s\n", summary.RunID)

	if summary.PackagesProcessed > 0 {
		fmt.Fprintf(r.out, "Processed %d packages\n", summary.PackagesProcessed)
	}
	if summary.Accepted > 0 {
		fmt.Fprintf(r.out, "Generated %d of %d candidate interfaces\n", summary.Accepted, summary.Candidates)
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(r.out, "Skipped %d interfaces\n", summary.Skipped)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}
