package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
)

// trendCmd performs the global timeline view.
var trendCmd = &cobra.Command{
	Use:   "trend [data-dir]",
	Short: "Show the cross-country mean of an indicator per year.",
	Long: `Aggregate one indicator across all countries for every loaded year and
summarize the change over the brush window (delta and slope of the yearly means).

Years inside the brush window are marked in the table output.

Examples:
  # Global CO2 per capita trajectory
  climatlas trend --metric co2_pc

  # Sanitation progress over a narrower window
  climatlas trend --metric sanitation_pct --brush 2010:2023`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrend(cfg); err != nil {
			contract.LogFatal("Cannot run trend view", err)
		}
	},
}
