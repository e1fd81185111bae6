// =============================================================================
// XLSX to OSCAL Catalog - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// OUTPUT:
//   XLSX to OSCAL Catalog
//   Version:       1.0.0
//   Build Date:    2024-01-01
//   OSCAL Version: 1.1.2
//   Go Version:    go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================
// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/xlsx-to-oscal-catalog/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// =============================================================================
// VERSION COMMAND DEFINITION
// =============================================================================

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the application version",
		Long:  `Display the application version, build date, OSCAL version and Go runtime version.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "XLSX to OSCAL Catalog")
			fmt.Fprintf(out, "Version:       %s\n", Version)
			fmt.Fprintf(out, "Build Date:    %s\n", BuildDate)
			fmt.Fprintf(out, "OSCAL Version: %s\n", oscal.Version)
			fmt.Fprintf(out, "Go Version:    %s\n", runtime.Version())
		},
	}
}
