package errors

import "fmt"

// SkipError explains why an interface was excluded from generation.
// It is recoverable: the run continues without the interface.
type SkipError struct {
	*BaseError
	Interface string // qualified name of the rejected interface
	Method    string // offending method, empty for type-level reasons
	Reason    string // short reason without the interface name
}

// NewSkipError creates a skip error for an interface
func NewSkipError(iface, method, reason string) *SkipError {
	message := fmt.Sprintf("skipping interface %s: %s", iface, reason)
	if method != "" {
		message = fmt.Sprintf("skipping interface %s: method %s: %s", iface, method, reason)
	}
	base := New(SkipErrorCode, message).WithContext("interface", iface)
	if method != "" {
		base.WithContext("method", method)
	}
	return &SkipError{
		BaseError: base,
		Interface: iface,
		Method:    method,
		Reason:    reason,
	}
}

// ConfigurationError reports an invalid setting or an inconsistent
// strategy registry. It aborts the run.
type ConfigurationError struct {
	*BaseError
	Setting  string // what was misconfigured
	Expected string // expected shape or value
	Actual   string // what was found
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(setting, expected, actual string) *ConfigurationError {
	message := fmt.Sprintf("invalid %s: expected %s, got %q", setting, expected, actual)
	return &ConfigurationError{
		BaseError: New(ConfigurationErrorCode, message).
			WithContext("setting", setting).
			WithContext("expected", expected).
			WithContext("actual", actual),
		Setting:  setting,
		Expected: expected,
		Actual:   actual,
	}
}

// GenerationError reports a failure while emitting one interface. It aborts the run.
type GenerationError struct {
	*BaseError
	Interface string // qualified name of the interface being emitted
	Attribute string // attribute being emitted, empty for class-level failures
}

// NewGenerationError creates a generation error
func NewGenerationError(iface, attribute, message string) *GenerationError {
	full := fmt.Sprintf("generating %s: %s", iface, message)
	if attribute != "" {
		full = fmt.Sprintf("generating %s, attribute %s: %s", iface, attribute, message)
	}
	base := New(GenerationErrorCode, full).WithContext("interface", iface)
	if attribute != "" {
		base.WithContext("attribute", attribute)
	}
	return &GenerationError{
		BaseError: base,
		Interface: iface,
		Attribute: attribute,
	}
}

// StaleError reports generated files that differ from a fresh generation run
type StaleError struct {
	*BaseError
	Files []string
}

// NewStaleError creates a stale error listing out-of-date files
func NewStaleError(files []string) *StaleError {
	return &StaleError{
		BaseError: Newf(StaleErrorCode, "%d generated file(s) are out of date", len(files)).
			WithContext("files", files).
			WithSuggestions("Run 'dtogen generate' and commit the result"),
		Files: files,
	}
}
