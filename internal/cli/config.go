package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/toyz/dtogen/internal/errors"
	"github.com/toyz/dtogen/internal/generator"
	"github.com/toyz/dtogen/internal/models"
	"github.com/toyz/dtogen/internal/utils"
)

// ConfigFileName is looked up in the working directory, without extension
const ConfigFileName = ".dtogen"

// EnvPrefix prefixes environment overrides, e.g. DTOGEN_SUFFIX
const EnvPrefix = "DTOGEN"

// Config holds the configuration for the CLI generator
type Config struct {
	// Suffix is appended to interface names to form generated type names
	Suffix string `mapstructure:"suffix"`

	// GenerateSetters adds one setter per accessor
	GenerateSetters bool `mapstructure:"generate_setters"`

	// Packages are package patterns for the Go loader, e.g. ./...
	Packages []string `mapstructure:"packages"`

	// Manifest is a YAML descriptor file used instead of Go packages
	Manifest string `mapstructure:"manifest"`

	// Output is the root directory for generated files. Empty writes next to
	// the interfaces, resolved through go.mod.
	Output string `mapstructure:"output"`

	// Dir is the working directory for package loading and go.mod lookup
	Dir string `mapstructure:"dir"`

	// Workers bounds concurrent emission
	Workers int `mapstructure:"workers"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `mapstructure:"verbose"`

	// Quiet only shows errors and final results
	Quiet bool `mapstructure:"quiet"`
}

// SetDefaults registers the default value of every setting
func SetDefaults(v *viper.Viper) {
	v.SetDefault("suffix", models.DefaultSuffix)
	v.SetDefault("generate_setters", false)
	v.SetDefault("packages", []string{"./..."})
	v.SetDefault("manifest", "")
	v.SetDefault("output", "")
	v.SetDefault("dir", ".")
	v.SetDefault("workers", 4)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
}

// NewViper creates a viper instance reading .dtogen.yaml and DTOGEN_* variables
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return v
}

// LoadConfig reads the config file, if any, and decodes every source
func LoadConfig(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.WrapConfigurationError(v.ConfigFileUsed(), "read", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, errors.WrapConfigurationError(ConfigFileName, "decode", err)
	}
	return config, nil
}

// Validate checks settings that must hold before anything is loaded
func (c Config) Validate() error {
	if err := generator.ValidateSuffix(c.Suffix); err != nil {
		return err
	}
	if c.Manifest == "" && len(c.Packages) == 0 {
		return errors.NewConfigurationError("packages", "at least one package pattern or a manifest", "")
	}
	if c.Workers < 0 {
		return errors.NewConfigurationError("workers", "a non-negative number", fmt.Sprint(c.Workers))
	}
	return nil
}

// Options converts the config into generator options
func (c Config) Options() models.Options {
	return models.Options{
		Suffix:          c.Suffix,
		GenerateSetters: c.GenerateSetters,
		Workers:         c.Workers,
	}
}

// DiagnosticLevel maps the verbosity flags to a diagnostic level
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}
