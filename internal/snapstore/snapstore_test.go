package snapstore

import (
	"path/filepath"
	"testing"
	"time"

	"climatlas/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("climatlas_snapshots"))
	assert.NoError(t, validateTableName("_tmp"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1bad"))
	assert.Error(t, validateTableName("drop table;--"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}

func TestObservationStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	store, err := NewObservationStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	obs := []schema.Observation{
		{ISO3: "BRA", Country: "Brazil", Year: 2000, CO2PC: fptr(1.85)},
		{ISO3: "USA", Country: "United States", Year: 2000, CO2PC: fptr(20.1), GDPPC: fptr(45887)},
		{ISO3: "USA", Country: "United States", Year: 2023, CO2PC: fptr(14.9)},
	}
	require.NoError(t, store.PutObservations(obs))

	got, err := store.GetObservations()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "BRA", got[0].ISO3, "rows come back ordered by (iso3, year)")
	assert.Equal(t, 2000, got[1].Year)
	assert.Equal(t, 2023, got[2].Year)
	require.NotNil(t, got[1].GDPPC)
	assert.Equal(t, 45887.0, *got[1].GDPPC)
	assert.Nil(t, got[0].GDPPC)

	last, err := store.LastIngestTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), last, time.Minute)
}

func TestObservationStoreUpsert(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	store, err := NewObservationStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.PutObservations([]schema.Observation{
		{ISO3: "USA", Country: "United States", Year: 2023, CO2PC: fptr(15.0)},
	}))
	require.NoError(t, store.PutObservations([]schema.Observation{
		{ISO3: "USA", Country: "United States", Year: 2023, CO2PC: fptr(14.9)},
	}))

	got, err := store.GetObservations()
	require.NoError(t, err)
	require.Len(t, got, 1, "re-ingest replaces, it does not duplicate")
	assert.Equal(t, 14.9, *got[0].CO2PC)
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	store, err := NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	id, err := store.BeginSnapshot(time.Now(), schema.MetricCO2, schema.ValueMode, 2023, 2000, 2023)
	require.NoError(t, err)
	assert.Positive(t, id)

	require.NoError(t, store.RecordDerived(id, "USA", "United States", fptr(14.9)))
	require.NoError(t, store.RecordDerived(id, "TCD", "Chad", nil))
	require.NoError(t, store.EndSnapshot(id, 2))

	snaps, err := store.GetAllSnapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, id, snaps[0].SnapshotID)
	assert.Equal(t, "co2_pc", snaps[0].Metric)
	assert.Equal(t, 2, snaps[0].CountryCount)

	derived, err := store.GetAllDerived()
	require.NoError(t, err)
	require.Len(t, derived, 2)
	assert.Equal(t, "TCD", derived[0].ISO3)
	assert.Nil(t, derived[0].Value)
	require.NotNil(t, derived[1].Value)
	assert.Equal(t, 14.9, *derived[1].Value)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.Snapshots)
	assert.Equal(t, int64(2), status.TableSizes[derivedTable])
}

func TestNoneBackendIsNoOp(t *testing.T) {
	obsStore, err := NewObservationStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NoError(t, obsStore.PutObservations([]schema.Observation{{ISO3: "USA", Year: 2000}}))
	got, err := obsStore.GetObservations()
	require.NoError(t, err)
	assert.Nil(t, got)

	snapStore, err := NewSnapshotStore(schema.NoneBackend, "")
	require.NoError(t, err)
	id, err := snapStore.BeginSnapshot(time.Now(), schema.MetricCO2, schema.ValueMode, 2023, 2000, 2023)
	require.NoError(t, err)
	assert.Zero(t, id)

	status, err := snapStore.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestClearStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	store, err := NewObservationStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""), "clearing twice is fine")
	assert.Error(t, ClearStore(schema.SQLiteBackend, "", ""))
}

func TestMigrateStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// The migrated schema accepts writes through the store.
	store, err := NewObservationStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.PutObservations([]schema.Observation{
		{ISO3: "NOR", Country: "Norway", Year: 2010, CO2PC: fptr(9.2)},
	}))

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0), "full rollback")
}
