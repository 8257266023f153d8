package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/internal/contract"
	"climatlas/internal/outwriter"
)

// metricsCmd displays the indicator catalog.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the indicator keys, labels and units.",
	Long: `Show the catalog of indicators climatlas understands, with the key used
on --metric, the display label and the unit.

No data loading is performed - this is purely informational.

Examples:
  climatlas metrics
  climatlas metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteMetricsDefinitions(cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
