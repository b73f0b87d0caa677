package registry

import (
	"regexp"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/models"
)

// SuffixPattern is the shape every configured suffix must have
var SuffixPattern = regexp.MustCompile(`^[A-Z][A-Za-z]*$`)

// ValidateSuffix rejects suffixes that would not form a valid exported type name
func ValidateSuffix(suffix string) error {
	if SuffixPattern.MatchString(suffix) {
		return nil
	}
	err := errors.NewConfigurationError("suffix", "pattern "+SuffixPattern.String(), suffix)
	err.WithSuggestions(
		"Start the suffix with an upper-case letter",
		"Use letters only, e.g. 'Dto' or 'Impl'",
	)
	return err
}

// BuildRenameMap maps each accepted interface name to name+suffix. Generated
// names must not collide with an accepted name or any reserved name, otherwise
// a second run would pick them up again.
func BuildRenameMap(accepted []string, suffix string, reserved ...string) (models.RenameMap, error) {
	if err := ValidateSuffix(suffix); err != nil {
		return models.RenameMap{}, err
	}

	taken := make(map[string]bool, len(accepted)+len(reserved))
	for _, name := range accepted {
		taken[name] = true
	}
	for _, name := range reserved {
		taken[name] = true
	}

	entries := make([]models.RenameEntry, 0, len(accepted))
	for _, name := range accepted {
		generated := name + suffix
		if taken[generated] {
			err := errors.NewConfigurationError("suffix", "generated names that are not declared yet", generated)
			err.WithContext("interface", name)
			err.WithSuggestions(
				"Rename the existing type "+generated,
				"Choose a different suffix",
			)
			return models.RenameMap{}, err
		}
		entries = append(entries, models.RenameEntry{Original: name, Generated: generated})
	}
	return models.NewRenameMap(entries...), nil
}
