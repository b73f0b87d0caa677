package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/dtogen/internal/utils"
)

// NewRootCommand builds the dtogen command tree. Flags, DTOGEN_* variables and
// .dtogen.yaml all feed the same viper instance.
func NewRootCommand() *cobra.Command {
	v := NewViper()
	var configFile string

	root := &cobra.Command{
		Use:   "dtogen",
		Short: "Generate mutable DTO structs from getter-only interfaces",
		Long: `dtogen scans Go packages for interfaces made only of GetXxx accessors and
generates a mutable struct implementing each of them.

Examples:
  dtogen generate ./...                    # Write <name>_dto_gen.go next to each interface
  dtogen generate --setters ./model/...    # Also generate SetXxx methods
  dtogen generate --manifest types.yaml -o gen/
  dtogen check ./...                       # Fail when generated files are stale
  dtogen clean ./...                       # Remove generated files`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
			if len(args) > 0 {
				v.Set("packages", args)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ./.dtogen.yaml)")
	flags.String("suffix", "", "Suffix appended to generated type names (default: Dto)")
	flags.Bool("setters", false, "Generate a setter per accessor")
	flags.StringSliceP("packages", "p", nil, "Package patterns to load (default: ./...)")
	flags.StringP("manifest", "m", "", "YAML type manifest used instead of Go packages")
	flags.StringP("output", "o", "", "Output root directory (default: next to each interface)")
	flags.String("dir", "", "Working directory for loading and go.mod lookup")
	flags.Int("workers", 0, "Concurrent emitters (default: 4)")
	flags.BoolP("verbose", "v", false, "Enable verbose output and detailed error reporting")
	flags.BoolP("quiet", "q", false, "Only show errors and final results")

	bindings := map[string]string{
		"suffix":           "suffix",
		"generate_setters": "setters",
		"packages":         "packages",
		"manifest":         "manifest",
		"output":           "output",
		"dir":              "dir",
		"workers":          "workers",
		"verbose":          "verbose",
		"quiet":            "quiet",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newGenerateCommand(v),
		newCheckCommand(v),
		newCleanCommand(v),
	)
	return root
}

func newGenerateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Generate DTO structs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, v, func(config Config, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) error {
				diagnostics.Header("Generating DTOs")
				generator := NewGenerator(config, diagnostics)
				if err := generator.Run(cmd.Context()); err != nil {
					return err
				}

				summary := generator.GetSummary()
				if summary.Accepted == 0 {
					reporter.ReportWarning("no interfaces were generated")
				}
				diagnostics.Summary("Generation Complete!", summary.Stats())
				if config.Verbose {
					reporter.ReportSuccess(summary)
				}
				diagnostics.GenerationComplete()
				return nil
			})
		},
	}
}

func newCheckCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages...]",
		Short: "Verify that generated files are up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, v, func(config Config, diagnostics *utils.DiagnosticSystem, _ *DiagnosticReporter) error {
				diagnostics.Header("Checking generated DTOs")
				generator := NewGenerator(config, diagnostics)
				if err := generator.Check(cmd.Context()); err != nil {
					return err
				}
				diagnostics.Success("Generated files are up to date")
				return nil
			})
		},
	}
}

func newCleanCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [packages...]",
		Short: "Remove generated files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, v, func(config Config, diagnostics *utils.DiagnosticSystem, _ *DiagnosticReporter) error {
				diagnostics.Header("Cleaning generated DTOs")
				removed, err := NewCleaner(config.Dir, config.Output).CleanGeneratedFiles(config.Packages)
				for _, file := range removed {
					diagnostics.PhaseProgress("Removed " + file)
				}
				if err != nil {
					return err
				}
				diagnostics.Success("Removed %d generated files", len(removed))
				return nil
			})
		},
	}
}

// withConfig loads the configuration, sets up diagnostics and reports any
// error returned by run
func withConfig(cmd *cobra.Command, v *viper.Viper, run func(Config, *utils.DiagnosticSystem, *DiagnosticReporter) error) error {
	config, err := LoadConfig(v)

	diagnostics := utils.NewDiagnosticSystem(config.DiagnosticLevel())
	diagnostics.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	reporter := NewDiagnosticReporter(diagnostics.Level() >= utils.DiagnosticVerbose)
	reporter.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err == nil {
		err = run(config, diagnostics, reporter)
	}
	if err != nil {
		diagnostics.Error("%s failed", cmd.Name())
		reporter.ReportError(err)
		return err
	}
	return nil
}
