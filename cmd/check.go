package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
)

// checkCmd focused on CI/CD data-health enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [data-dir]",
	Short: "Enforce coverage thresholds for CI pipelines (fails build on violations)",
	Long: `Check, for every indicator, the share of countries that carry at least one
finite value inside the brush window, and fail with a non-zero exit code when
any share falls below its threshold.

Default threshold: 0.5 for every indicator. Override per indicator in
.climatlas.yaml under "thresholds:" or with --thresholds-override.

Use cases:
- Data pipeline gates - block publishing incomplete refreshes
- Scheduled health checks on the merged table

Examples:
  # Default thresholds over the full range
  climatlas check

  # Stricter CO2 coverage on a recent window
  climatlas check --brush 2015:2023 --thresholds-override "co2_pc:0.8"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(cfg); err != nil {
			contract.LogFatal("Coverage check failed", err)
		}
	},
}
