// Package cmd defines the command-line interface for climatlas.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"climatlas/internal/contract"
	"climatlas/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(stripesCmd)
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("metric", "m", string(schema.MetricCO2), "Indicator: co2_pc, energy_pc, water_basic_pct, sanitation_pct, gdp_pc, temp_anom")
	rootCmd.PersistentFlags().String("mode", string(schema.ValueMode), "Display mode: value or delta or slope")
	rootCmd.PersistentFlags().Int("year", 0, "Focus year for value mode (0 = latest loaded year)")
	rootCmd.PersistentFlags().String("brush", "", "Year window as START:END, e.g. 2000:2023 (empty = full range)")
	rootCmd.PersistentFlags().String("pins", "", "Comma-separated ISO3 codes to pin, e.g. USA,BRA,NOR")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Snapshot store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("x", "", "Indicator for the x axis")
	compareCmd.Flags().String("y", "", "Indicator for the y axis")
	compareCmd.Flags().String("select", "", "Selection rectangle in metric space: X0,X1,Y0,Y1")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("thresholds-override", "", "Coverage thresholds for CI gating (format: 'co2_pc:0.6,gdp_pc:0.4')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
