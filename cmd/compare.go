package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
)

// compareCmd performs the two-metric compare lab.
var compareCmd = &cobra.Command{
	Use:   "compare [data-dir]",
	Short: "Compare two indicators across countries.",
	Long: `Derive two indicators per country under the current mode and brush window
and list them side by side, one row per country.

Entering the compare lab from value mode upgrades the mode to slope, the same
way the interactive dashboard does. An optional selection rectangle in metric
space (--select X0,X1,Y0,Y1) replaces the selected set wholesale; a rectangle
that matches nothing yields an empty selection.

Examples:
  # GDP growth vs CO2 growth
  climatlas compare --x gdp_pc --y co2_pc

  # Change over a window, selecting fast-growing low emitters
  climatlas compare --x gdp_pc --y co2_pc --mode delta --brush 2000:2023 --select 0,50000,-10,0`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(cfg); err != nil {
			contract.LogFatal("Cannot run compare lab", err)
		}
	},
}
