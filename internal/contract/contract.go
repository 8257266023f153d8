// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"climatlas/schema"
)

// ObservationStore defines persistence for ingested observations.
// This allows the store layer to be mocked for testing.
type ObservationStore interface {
	// PutObservations inserts or replaces observation rows.
	PutObservations(obs []schema.Observation) error

	// GetObservations returns all persisted observations ordered by (iso3, year).
	GetObservations() ([]schema.Observation, error)

	// LastIngestTime returns the time of the most recent ingest, zero if none.
	LastIngestTime() (time.Time, error)

	// Close closes the underlying connection.
	Close() error
}

// SnapshotStore defines persistence for derived-value snapshots.
type SnapshotStore interface {
	// BeginSnapshot creates a snapshot run and returns its unique ID.
	BeginSnapshot(createdAt time.Time, metric schema.Metric, mode schema.DisplayMode, year, brushStart, brushEnd int) (int64, error)

	// RecordDerived stores one per-country derived value for a snapshot.
	RecordDerived(snapshotID int64, iso3, country string, value *float64) error

	// EndSnapshot finalizes a snapshot run with the country count.
	EndSnapshot(snapshotID int64, countryCount int) error

	// GetAllSnapshots returns all snapshot runs.
	GetAllSnapshots() ([]schema.SnapshotRecord, error)

	// GetAllDerived returns all derived rows ordered by (snapshot_id, iso3).
	GetAllDerived() ([]schema.DerivedRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the configured stores.
type StoreManager interface {
	GetObservationStore() ObservationStore
	GetSnapshotStore() SnapshotStore
}
