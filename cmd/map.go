package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
)

// mapCmd performs the choropleth-surrogate ranking view.
var mapCmd = &cobra.Command{
	Use:   "map [data-dir]",
	Short: "Rank countries by derived indicator value.",
	Long: `Show every country's derived value under the current metric, mode, year
and brush window, ranked from highest to lowest.

The value depends on the display mode:
- value: the stored observation at the focus year
- delta: last minus first finite observation inside the brush window
- slope: delta divided by the year span of the endpoints

Countries without data rank last and render as "no data". When a region
reference table is present, the name match rate is reported as a diagnostic.
Each run records a snapshot of the derived values into the configured store.

Examples:
  # Latest CO2 per capita, top 25
  climatlas map --metric co2_pc

  # Fastest GDP growth over 2000-2023
  climatlas map --metric gdp_pc --mode slope --brush 2000:2023

  # Export the full ranking to CSV
  climatlas map --limit 1000 --output csv --output-file ranking.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMap(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run map view", err)
		}
	},
}
