package snapstore

import (
	"database/sql"
	"fmt"
	"time"

	"climatlas/schema"

	"climatlas/internal/contract"
)

// Table names for snapshot tracking.
const (
	snapshotsTable = "climatlas_snapshots"
	derivedTable   = "climatlas_derived_values"
)

// SnapshotStoreImpl implements the SnapshotStore interface.
type SnapshotStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.SnapshotStore = &SnapshotStoreImpl{} // Compile-time check

// NewSnapshotStore creates a new SnapshotStore with the specified backend.
func NewSnapshotStore(backend schema.DatabaseBackend, connStr string) (contract.SnapshotStore, error) {
	db, err := openBackend(backend, connStr)
	if err != nil {
		return nil, err
	}
	store := &SnapshotStoreImpl{db: db, backend: backend}
	if db == nil {
		return store, nil
	}
	if err := createSnapshotTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshot tables: %w", err)
	}
	return store, nil
}

// createSnapshotTables creates the snapshot tracking tables.
func createSnapshotTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{snapshotsTable, createSnapshotsQuery(backend)},
		{derivedTable, createDerivedQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// createSnapshotsQuery returns the CREATE TABLE query for climatlas_snapshots.
func createSnapshotsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(snapshotsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				created_at DATETIME(6) NOT NULL,
				metric VARCHAR(50) NOT NULL,
				mode VARCHAR(20) NOT NULL,
				year INT NOT NULL,
				brush_start INT NOT NULL,
				brush_end INT NOT NULL,
				country_count INT
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGSERIAL PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL,
				metric TEXT NOT NULL,
				mode TEXT NOT NULL,
				year INT NOT NULL,
				brush_start INT NOT NULL,
				brush_end INT NOT NULL,
				country_count INT
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TEXT NOT NULL,
				metric TEXT NOT NULL,
				mode TEXT NOT NULL,
				year INTEGER NOT NULL,
				brush_start INTEGER NOT NULL,
				brush_end INTEGER NOT NULL,
				country_count INTEGER
			);
		`, quoted)
	}
}

// createDerivedQuery returns the CREATE TABLE query for climatlas_derived_values.
func createDerivedQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(derivedTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT NOT NULL,
				iso3 VARCHAR(3) NOT NULL,
				country VARCHAR(100) NOT NULL,
				value DOUBLE,
				PRIMARY KEY (snapshot_id, iso3)
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT NOT NULL,
				iso3 TEXT NOT NULL,
				country TEXT NOT NULL,
				value DOUBLE PRECISION,
				PRIMARY KEY (snapshot_id, iso3)
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id INTEGER NOT NULL,
				iso3 TEXT NOT NULL,
				country TEXT NOT NULL,
				value REAL,
				PRIMARY KEY (snapshot_id, iso3)
			);
		`, quoted)
	}
}

// BeginSnapshot creates a snapshot run and returns its unique ID.
func (st *SnapshotStoreImpl) BeginSnapshot(createdAt time.Time, metric schema.Metric, mode schema.DisplayMode, year, brushStart, brushEnd int) (int64, error) {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return 0, nil
	}

	quoted := quoteTableName(snapshotsTable, st.backend)

	var snapshotID int64
	var err error
	switch st.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (created_at, metric, mode, year, brush_start, brush_end)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING snapshot_id`, quoted)
		err = st.db.QueryRow(query, createdAt, string(metric), string(mode), year, brushStart, brushEnd).Scan(&snapshotID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (created_at, metric, mode, year, brush_start, brush_end)
			VALUES (?, ?, ?, ?, ?, ?)`, quoted)
		var result sql.Result
		result, err = st.db.Exec(query, formatTime(createdAt, st.backend), string(metric), string(mode), year, brushStart, brushEnd)
		if err == nil {
			snapshotID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
	}
	return snapshotID, nil
}

// RecordDerived stores one per-country derived value for a snapshot.
func (st *SnapshotStoreImpl) RecordDerived(snapshotID int64, iso3, country string, value *float64) error {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil
	}

	quoted := quoteTableName(derivedTable, st.backend)
	var query string
	switch st.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (snapshot_id, iso3, country, value) VALUES ($1, $2, $3, $4)`, quoted)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (snapshot_id, iso3, country, value) VALUES (?, ?, ?, ?)`, quoted)
	}
	if _, err := st.db.Exec(query, snapshotID, iso3, country, value); err != nil {
		return fmt.Errorf("failed to insert derived value: %w", err)
	}
	return nil
}

// EndSnapshot finalizes a snapshot run with the country count.
func (st *SnapshotStoreImpl) EndSnapshot(snapshotID int64, countryCount int) error {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil
	}

	quoted := quoteTableName(snapshotsTable, st.backend)
	var query string
	switch st.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET country_count = $1 WHERE snapshot_id = $2`, quoted)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET country_count = ? WHERE snapshot_id = ?`, quoted)
	}
	if _, err := st.db.Exec(query, countryCount, snapshotID); err != nil {
		return fmt.Errorf("failed to finalize snapshot run: %w", err)
	}
	return nil
}

// GetAllSnapshots returns all snapshot runs ordered by ID.
func (st *SnapshotStoreImpl) GetAllSnapshots() ([]schema.SnapshotRecord, error) {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil, nil
	}

	quoted := quoteTableName(snapshotsTable, st.backend)
	query := fmt.Sprintf(`SELECT snapshot_id, created_at, metric, mode, year, brush_start,
		brush_end, COALESCE(country_count, 0) FROM %s ORDER BY snapshot_id`, quoted)

	rows, err := st.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotRecord
	for rows.Next() {
		var rec schema.SnapshotRecord

		switch st.backend {
		case schema.SQLiteBackend:
			var createdStr string
			if err := rows.Scan(&rec.SnapshotID, &createdStr, &rec.Metric, &rec.Mode,
				&rec.Year, &rec.BrushStart, &rec.BrushEnd, &rec.CountryCount); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
			created, err := parseTime(createdStr)
			if err != nil {
				return nil, err
			}
			rec.CreatedAt = created
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&rec.SnapshotID, &rec.CreatedAt, &rec.Metric, &rec.Mode,
				&rec.Year, &rec.BrushStart, &rec.BrushEnd, &rec.CountryCount); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot runs: %w", err)
	}
	return results, nil
}

// GetAllDerived returns all derived rows ordered by (snapshot_id, iso3).
func (st *SnapshotStoreImpl) GetAllDerived() ([]schema.DerivedRecord, error) {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil, nil
	}

	quoted := quoteTableName(derivedTable, st.backend)
	query := fmt.Sprintf(`SELECT snapshot_id, iso3, country, value FROM %s ORDER BY snapshot_id, iso3`, quoted)

	rows, err := st.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query derived values: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DerivedRecord
	for rows.Next() {
		var rec schema.DerivedRecord
		if err := rows.Scan(&rec.SnapshotID, &rec.ISO3, &rec.Country, &rec.Value); err != nil {
			return nil, fmt.Errorf("failed to scan derived value: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating derived values: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the snapshot store.
func (st *SnapshotStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(st.backend),
		Connected:  st.db != nil,
		TableSizes: make(map[string]int64),
	}
	if st.backend == schema.NoneBackend || st.db == nil {
		return status, nil
	}

	for _, table := range []string{snapshotsTable, derivedTable} {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, st.backend))
		var count int64
		if err := st.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.Snapshots = status.TableSizes[snapshotsTable]
	return status, nil
}

// Close closes the underlying connection.
func (st *SnapshotStoreImpl) Close() error {
	if st.db != nil {
		return st.db.Close()
	}
	return nil
}
