package snapstore

import (
	"database/sql"
	"fmt"
	"time"

	"climatlas/schema"

	"climatlas/internal/contract"
)

// observationsTable holds ingested (country, year) rows.
const observationsTable = "climatlas_observations"

// ObservationStoreImpl implements the ObservationStore interface.
type ObservationStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ObservationStore = &ObservationStoreImpl{} // Compile-time check

// NewObservationStore creates a new ObservationStore with the specified backend.
func NewObservationStore(backend schema.DatabaseBackend, connStr string) (contract.ObservationStore, error) {
	db, err := openBackend(backend, connStr)
	if err != nil {
		return nil, err
	}
	store := &ObservationStoreImpl{db: db, backend: backend}
	if db == nil {
		return store, nil
	}
	if _, err := db.Exec(createObservationsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", observationsTable, err)
	}
	return store, nil
}

// createObservationsQuery returns the CREATE TABLE query for the backend.
func createObservationsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(observationsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				iso3 VARCHAR(3) NOT NULL,
				year INT NOT NULL,
				country VARCHAR(100) NOT NULL,
				co2_pc DOUBLE,
				energy_pc DOUBLE,
				water_basic_pct DOUBLE,
				sanitation_pct DOUBLE,
				gdp_pc DOUBLE,
				temp_anom DOUBLE,
				ingested_at DATETIME(6) NOT NULL,
				PRIMARY KEY (iso3, year)
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				iso3 TEXT NOT NULL,
				year INT NOT NULL,
				country TEXT NOT NULL,
				co2_pc DOUBLE PRECISION,
				energy_pc DOUBLE PRECISION,
				water_basic_pct DOUBLE PRECISION,
				sanitation_pct DOUBLE PRECISION,
				gdp_pc DOUBLE PRECISION,
				temp_anom DOUBLE PRECISION,
				ingested_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (iso3, year)
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				iso3 TEXT NOT NULL,
				year INTEGER NOT NULL,
				country TEXT NOT NULL,
				co2_pc REAL,
				energy_pc REAL,
				water_basic_pct REAL,
				sanitation_pct REAL,
				gdp_pc REAL,
				temp_anom REAL,
				ingested_at TEXT NOT NULL,
				PRIMARY KEY (iso3, year)
			);
		`, quoted)
	}
}

// PutObservations inserts or replaces observation rows in one transaction.
func (st *ObservationStoreImpl) PutObservations(obs []schema.Observation) error {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil
	}

	quoted := quoteTableName(observationsTable, st.backend)
	var query string
	switch st.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (iso3, year, country, co2_pc, energy_pc, water_basic_pct,
			                sanitation_pct, gdp_pc, temp_anom, ingested_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE country = VALUES(country), co2_pc = VALUES(co2_pc),
				energy_pc = VALUES(energy_pc), water_basic_pct = VALUES(water_basic_pct),
				sanitation_pct = VALUES(sanitation_pct), gdp_pc = VALUES(gdp_pc),
				temp_anom = VALUES(temp_anom), ingested_at = VALUES(ingested_at)
		`, quoted)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (iso3, year, country, co2_pc, energy_pc, water_basic_pct,
			                sanitation_pct, gdp_pc, temp_anom, ingested_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (iso3, year) DO UPDATE SET country = EXCLUDED.country,
				co2_pc = EXCLUDED.co2_pc, energy_pc = EXCLUDED.energy_pc,
				water_basic_pct = EXCLUDED.water_basic_pct, sanitation_pct = EXCLUDED.sanitation_pct,
				gdp_pc = EXCLUDED.gdp_pc, temp_anom = EXCLUDED.temp_anom,
				ingested_at = EXCLUDED.ingested_at
		`, quoted)
	default: // SQLite
		query = fmt.Sprintf(`
			INSERT OR REPLACE INTO %s (iso3, year, country, co2_pc, energy_pc, water_basic_pct,
			                           sanitation_pct, gdp_pc, temp_anom, ingested_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quoted)
	}

	tx, err := st.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin ingest transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare ingest statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := formatTime(time.Now(), st.backend)
	for _, o := range obs {
		if _, err := stmt.Exec(o.ISO3, o.Year, o.Country, o.CO2PC, o.EnergyPC,
			o.WaterBasicPct, o.SanitationPct, o.GDPPC, o.TempAnom, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert observation %s/%d: %w", o.ISO3, o.Year, err)
		}
	}
	return tx.Commit()
}

// GetObservations returns all persisted observations ordered by (iso3, year).
func (st *ObservationStoreImpl) GetObservations() ([]schema.Observation, error) {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil, nil
	}

	quoted := quoteTableName(observationsTable, st.backend)
	query := fmt.Sprintf(`SELECT iso3, year, country, co2_pc, energy_pc, water_basic_pct,
		sanitation_pct, gdp_pc, temp_anom FROM %s ORDER BY iso3, year`, quoted)

	rows, err := st.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Observation
	for rows.Next() {
		var o schema.Observation
		if err := rows.Scan(&o.ISO3, &o.Year, &o.Country, &o.CO2PC, &o.EnergyPC,
			&o.WaterBasicPct, &o.SanitationPct, &o.GDPPC, &o.TempAnom); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		results = append(results, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating observations: %w", err)
	}
	return results, nil
}

// LastIngestTime returns the time of the most recent ingest, zero if none.
func (st *ObservationStoreImpl) LastIngestTime() (time.Time, error) {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return time.Time{}, nil
	}

	quoted := quoteTableName(observationsTable, st.backend)
	query := fmt.Sprintf("SELECT MAX(ingested_at) FROM %s", quoted)
	row := st.db.QueryRow(query)

	switch st.backend {
	case schema.SQLiteBackend:
		var s sql.NullString
		if err := row.Scan(&s); err != nil {
			return time.Time{}, fmt.Errorf("failed to get last ingest time: %w", err)
		}
		if !s.Valid {
			return time.Time{}, nil
		}
		return parseTime(s.String)
	default: // MySQL and PostgreSQL store as native datetime
		var t sql.NullTime
		if err := row.Scan(&t); err != nil {
			return time.Time{}, fmt.Errorf("failed to get last ingest time: %w", err)
		}
		if !t.Valid {
			return time.Time{}, nil
		}
		return t.Time, nil
	}
}

// Close closes the underlying connection.
func (st *ObservationStoreImpl) Close() error {
	if st.db != nil {
		return st.db.Close()
	}
	return nil
}
