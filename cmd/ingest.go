package cmd

import (
	"github.com/spf13/cobra"

	"climatlas/core"
	"climatlas/internal/contract"
)

// ingestCmd loads the CSVs and persists them into the observation store.
var ingestCmd = &cobra.Command{
	Use:   "ingest [data-dir]",
	Short: "Load the indicator table and persist it into the snapshot store.",
	Long: `Parse the merged indicator table and write every observation into the
configured store backend. Re-ingesting the same (country, year) rows replaces
them, so the command is safe to run after every data refresh.

Examples:
  # Ingest into the default SQLite store
  climatlas ingest ./data

  # Ingest into PostgreSQL
  CLIMATLAS_STORE_DB_CONNECT="host=... dbname=..." climatlas ingest --store-backend postgresql`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIngest(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot ingest dataset", err)
		}
	},
}
