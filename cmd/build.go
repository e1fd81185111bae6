// =============================================================================
// XLSX to OSCAL Catalog - Build Command
// =============================================================================
//
// This file defines the 'build' command, which converts the control worksheet
// into an OSCAL catalog file.
//
// COMMAND USAGE:
//   catalog build [flags]
//
// FLAGS:
//   --input   : XLSX workbook (default data/AI-RMF.xlsx)
//   --yaml    : metadata document (default data/AI-RMF.yaml)
//   --output  : output directory (default catalogs/AI_RMF)
//   --format  : json, yaml or xml (default json)
//   --strict  : fail when the data-quality checks report findings
//   --dry-run : build and check without writing
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/config"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/converter"
)

// =============================================================================
// BUILD COMMAND DEFINITION
// =============================================================================

func newBuildCommand(v *viper.Viper) *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the OSCAL catalog from the control worksheet",
		Long: `The build command reads the worksheet named by the metadata document,
groups its rows into groups and subgroups, and writes catalog.<format> into
the output directory. The output directory is created if needed.

Data-quality findings (empty identifiers, identifiers differing only by case,
repeated control ids, missing titles) are logged as warnings. With --strict
they fail the run before anything is written.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, v)
		},
	}

	addInputFlags(buildCmd)
	buildCmd.Flags().String("output", config.DefaultOutput, "Directory receiving the catalog file")
	buildCmd.Flags().String("format", config.DefaultFormat, "Output format: json, yaml or xml")
	buildCmd.Flags().Bool("strict", false, "Fail when data-quality checks report findings")
	buildCmd.Flags().Bool("dry-run", false, "Build and check the catalog without writing it")

	return buildCmd
}

// addInputFlags registers the flags shared by build and validate.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", config.DefaultInput, ".xlsx file containing the controls")
	cmd.Flags().String("yaml", config.DefaultYAML, ".yaml file containing the catalog metadata")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runBuild(cmd *cobra.Command, v *viper.Viper) error {
	s, err := settings(v)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, v)

	opts := []converter.Option{converter.WithLogger(logger)}
	if v.GetBool("dry-run") {
		opts = append(opts, converter.WithDryRun())
	}

	// The run timestamp is captured once, here, and threaded through.
	result := converter.New(s, utc.Now().Time, opts...).Run()
	if result.Error != nil {
		return result.Error
	}

	out := cmd.OutOrStdout()
	if result.OutputFile != "" {
		fmt.Fprintf(out, "output: %s\n", result.OutputFile)
	}
	fmt.Fprintf(out, "groups: %d  subgroups: %d  controls: %d  warnings: %d\n",
		result.Stats.Groups,
		result.Stats.Subgroups,
		result.Stats.Controls,
		result.Stats.Warnings,
	)

	return nil
}
