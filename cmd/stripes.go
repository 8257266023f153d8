package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
)

// stripesCmd performs the global anomaly stripe strip.
var stripesCmd = &cobra.Command{
	Use:   "stripes [data-dir]",
	Short: "Show the global monthly temperature-anomaly stripes.",
	Long: `Render the optional monthly global temperature-anomaly table as a warming
stripe strip, one row per year inside the brush window.

A missing or malformed monthly table disables this view with a warning and
does not affect any other command.

Examples:
  # Full loaded range
  climatlas stripes

  # Recent decades only
  climatlas stripes --brush 1990:2023`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStripes(cfg); err != nil {
			contract.LogFatal("Cannot run stripes view", err)
		}
	},
}
