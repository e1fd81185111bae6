package cmd

import (
	"fmt"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/converter"
)

// newValidateCommand reports data-quality findings without writing a catalog.
func newValidateCommand(v *viper.Viper) *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the control worksheet without writing a catalog",
		Long: `The validate command reads the worksheet exactly as build does and prints
every data-quality finding. It exits non-zero when there are findings.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings(v)
			if err != nil {
				return err
			}

			result := converter.New(s, utc.Now().Time,
				converter.WithLogger(newLogger(cmd, v)),
				converter.WithDryRun(),
			).Run()
			if result.Error != nil {
				return result.Error
			}

			out := cmd.OutOrStdout()
			for _, issue := range result.Issues {
				fmt.Fprintln(out, issue.Error())
			}
			fmt.Fprintf(out, "%d row(s), %d finding(s)\n", result.Stats.RowsProcessed, len(result.Issues))

			if len(result.Issues) > 0 {
				return fmt.Errorf("%w: %d finding(s)", converter.ErrDataQuality, len(result.Issues))
			}
			return nil
		},
	}

	addInputFlags(validateCmd)

	return validateCmd
}
