package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
)

// focusCmd performs the per-country focus panel.
var focusCmd = &cobra.Command{
	Use:   "focus <iso3> [data-dir]",
	Short: "Show all indicators for one country.",
	Long: `Show every indicator for a single country: the value at the focus year,
the delta and slope over the brush window, and a sparkline of the series.

Examples:
  # United States, latest year, full range
  climatlas focus USA

  # Brazil over a narrower window
  climatlas focus BRA --brush 2010:2023`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The first positional is the country; only a second one names the data dir.
		return sharedSetup(rootCtx, cmd, args[1:])
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteFocus(cfg, args[0]); err != nil {
			contract.LogFatal(fmt.Sprintf("Cannot run focus view for '%s'", args[0]), err)
		}
	},
}
