package snapstore

import (
	"errors"
	"fmt"

	"climatlas/internal/parquet"
)

// ExecuteStoreExport exports the observation and snapshot data to Parquet files.
func ExecuteStoreExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	obsStore := Manager.GetObservationStore()
	snapStore := Manager.GetSnapshotStore()

	// Check if there's any data to export
	status, err := Status(Manager)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.Observations == 0 && status.Snapshots == 0 {
		return errors.New("no store data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total observations: %d\n", status.Observations)
	fmt.Printf("Total snapshot runs: %d\n", status.Snapshots)

	obs, err := obsStore.GetObservations()
	if err != nil {
		return fmt.Errorf("failed to retrieve observations: %w", err)
	}
	snaps, err := snapStore.GetAllSnapshots()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}
	derived, err := snapStore.GetAllDerived()
	if err != nil {
		return fmt.Errorf("failed to retrieve derived values: %w", err)
	}

	// Write observations to Parquet
	obsFile := outputFile + ".observations.parquet"
	if err := parquet.WriteObservationsParquet(parquet.FromObservations(obs), obsFile); err != nil {
		return fmt.Errorf("failed to write observations: %w", err)
	}
	fmt.Printf("Wrote %d observations to %s\n", len(obs), obsFile)

	// Write snapshot runs to Parquet
	snapsFile := outputFile + ".snapshots.parquet"
	if err := parquet.WriteSnapshotsParquet(parquet.FromSnapshots(snaps), snapsFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	fmt.Printf("Wrote %d snapshot runs to %s\n", len(snaps), snapsFile)

	// Write derived values to Parquet
	derivedFile := outputFile + ".derived.parquet"
	if err := parquet.WriteDerivedParquet(parquet.FromDerived(derived), derivedFile); err != nil {
		return fmt.Errorf("failed to write derived values: %w", err)
	}
	fmt.Printf("Wrote %d derived values to %s\n", len(derived), derivedFile)

	return nil
}
