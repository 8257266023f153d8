package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
	"climatlas/internal/dash"
)

// dashCmd starts the interactive dashboard.
var dashCmd = &cobra.Command{
	Use:   "dash [data-dir]",
	Short: "Start the interactive terminal dashboard.",
	Long: `Open the full-screen dashboard with three scenes:
  1 distribution - ranked country list for the current metric
  2 change       - global timeline with the brush window
  3 compare      - two-indicator country table

Keys drive the same state machine as the CLI flags: brushing the timeline in
value mode switches to slope, scene 1 always shows values, pins survive scene
changes. Press ? inside the dashboard for the full key list.

Examples:
  climatlas dash
  climatlas dash --metric gdp_pc --brush 2000:2023`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ds, st, err := core.LoadEnvironment(cfg)
		if err != nil {
			contract.LogFatal("Cannot load dataset", err)
		}
		if err := dash.Run(cfg, ds, st); err != nil {
			contract.LogFatal("Dashboard failed", err)
		}
	},
}
