package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"climatlas/internal/contract"
	"climatlas/internal/outwriter"
	"climatlas/internal/snapstore"
	"climatlas/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by status/export)
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")

	// Initialize stores with the loaded config
	if err := snapstore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on snapshot store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by view commands. This avoids dataset loading and
// complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the observation and snapshot store",
	Long: `Manage the persistent store that holds ingested observations and recorded
snapshot runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all persisted data
  export  - Export data to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check store status
  climatlas store status

  # Export for analysis in pandas/DuckDB
  climatlas store export --output-file climatlas-data`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the observation and snapshot store.

Displays:
- Backend type and connection status
- Number of ingested observations and last ingest time
- Number of recorded snapshot runs
- Database table sizes

Examples:
  # Check store status
  climatlas store status

  # Machine-readable status
  climatlas store status --output json`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapstore.Status(snapstore.Manager)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.WriteStoreStatus(cfg, status); err != nil {
			contract.LogFatal("Failed to print store status", err)
		}
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted observations and snapshot runs",
	Long: `Delete all persisted data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the store tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Clear the default SQLite store
  climatlas store clear

  # Clear a MySQL store (set connection string via env variable)
  CLIMATLAS_STORE_BACKEND=mysql CLIMATLAS_STORE_DB_CONNECT="..." climatlas store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapstore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports store data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export store data to Parquet for analytics tools",
	Long: `Export all persisted data to Parquet format for use with analytics tools.

Exports three datasets:
- Observations - the ingested (country, year) indicator rows
- Snapshot runs - metadata about each recorded map run
- Derived values - per-country derived values for each snapshot

Requires: --output-file parameter (used as a filename prefix)

Examples:
  # Export all data
  climatlas store export --output-file climatlas-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('climatlas-data.observations.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapstore.ExecuteStoreExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  climatlas store migrate

  # Rollback everything
  climatlas store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
