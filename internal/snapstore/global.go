package snapstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"climatlas/schema"

	"climatlas/internal/contract"
)

// StoreManagerImpl holds the configured observation and snapshot stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	observations contract.ObservationStore
	snapshots    contract.SnapshotStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetObservationStore returns the observation store.
func (mgr *StoreManagerImpl) GetObservationStore() contract.ObservationStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.observations
}

// GetSnapshotStore returns the snapshot store.
func (mgr *StoreManagerImpl) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshots
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager.
// This function body runs exactly once, even with concurrent calls.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		obsStore, err := NewObservationStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize observation store: %w", err)
			return
		}
		snapStore, err := NewSnapshotStore(backend, connStr)
		if err != nil {
			_ = obsStore.Close()
			initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.observations = obsStore
		Manager.snapshots = snapStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.observations != nil {
			_ = Manager.observations.Close()
		}
		if Manager.snapshots != nil {
			_ = Manager.snapshots.Close()
		}
	})
}

// ClearStore removes persisted data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropTables("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropTables connects to the SQL database and drops all store tables.
func dropTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range []string{observationsTable, snapshotsTable, derivedTable} {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// Status assembles a combined status report from both stores.
func Status(manager contract.StoreManager) (schema.StoreStatus, error) {
	status, err := manager.GetSnapshotStore().GetStatus()
	if err != nil {
		return status, err
	}
	obs, err := manager.GetObservationStore().GetObservations()
	if err != nil {
		return status, err
	}
	status.Observations = int64(len(obs))
	last, err := manager.GetObservationStore().LastIngestTime()
	if err != nil {
		return status, err
	}
	status.LastIngest = last
	return status, nil
}
