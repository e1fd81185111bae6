// =============================================================================
// XLSX to OSCAL Catalog - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (catalog)
//   ├── buildCmd    (catalog build)
//   ├── validateCmd (catalog validate)
//   └── versionCmd  (catalog version)
//
// CONFIGURATION:
//   Every flag can also be set through the environment as CATALOG_<FLAG>,
//   e.g. CATALOG_LOG_LEVEL=debug or CATALOG_OUTPUT=out/catalogs. A .env file
//   in the working directory is loaded first. Explicit flags win.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/config"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/logging"
)

// EnvPrefix prefixes the environment variables bound to flags.
const EnvPrefix = "CATALOG"

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCommand builds the command tree. Each call returns an independent
// tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "catalog",
		Short: "XLSX to OSCAL Catalog - Build an OSCAL catalog from a control spreadsheet",
		Long: `catalog reads a worksheet of risk-management-framework controls and
writes an OSCAL catalog. Rows are grouped into groups and subgroups by their
identifiers; every row becomes one control.

Example Usage:
  catalog build                                  # data/AI-RMF.xlsx -> catalogs/AI_RMF/catalog.json
  catalog build --format yaml --output out/rmf   # write out/rmf/catalog.yaml
  catalog validate                               # report data-quality findings only`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, v)
		},

		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	flags := rootCmd.PersistentFlags()
	flags.String("root", "", "Directory that relative paths are resolved against (default is the working directory)")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error, disabled")
	flags.String("log-format", "auto", "Log format: auto, console, json")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newBuildCommand(v),
		newValidateCommand(v),
		newVersionCommand(),
	)

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// bindFlags loads .env, then binds the command's flags to CATALOG_* variables.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

// settings collects the run settings from flags and environment.
func settings(v *viper.Viper) (config.Settings, error) {
	s := config.Settings{
		Root:   v.GetString("root"),
		Input:  v.GetString("input"),
		YAML:   v.GetString("yaml"),
		Output: v.GetString("output"),
		Format: v.GetString("format"),
		Strict: v.GetBool("strict"),
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return s, err
	}
	s.Resolve()
	return s, nil
}

// newLogger builds the logger for a command from flags and environment.
func newLogger(cmd *cobra.Command, v *viper.Viper) zerolog.Logger {
	level := v.GetString("log-level")
	if v.GetBool("verbose") {
		level = "debug"
	}
	return logging.New(&logging.Config{
		Level:   level,
		Format:  v.GetString("log-format"),
		Output:  cmd.ErrOrStderr(),
		NoColor: os.Getenv("NO_COLOR") != "",
	})
}
