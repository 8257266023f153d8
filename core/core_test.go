package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"climatlas/internal/contract"
	"climatlas/internal/snapstore"
	"climatlas/schema"
)

func TestRecordSnapshotPersistsEachRow(t *testing.T) {
	snap := &snapstore.MockSnapshotStore{}
	mgr := &snapstore.MockStoreManager{}
	mgr.On("GetSnapshotStore").Return(snap)

	snap.On("BeginSnapshot", mock.Anything, schema.MetricCO2, schema.ValueMode, 2023, 2000, 2023).
		Return(int64(7), nil)
	snap.On("RecordDerived", int64(7), "USA", "United States", mock.Anything).Return(nil)
	snap.On("RecordDerived", int64(7), "BRA", "Brazil", mock.Anything).Return(nil)
	snap.On("EndSnapshot", int64(7), 2).Return(nil)

	res := &schema.MapResult{
		Metric:     schema.MetricCO2,
		Mode:       schema.ValueMode,
		Year:       2023,
		BrushStart: 2000,
		BrushEnd:   2023,
		Rows: []schema.MapRow{
			{Rank: 1, ISO3: "USA", Country: "United States", Value: fptr(14.9)},
			{Rank: 2, ISO3: "BRA", Country: "Brazil", Value: fptr(2.21)},
		},
	}

	require.NoError(t, recordSnapshot(mgr, res))
	snap.AssertExpectations(t)
}

func TestRecordSnapshotPropagatesBeginError(t *testing.T) {
	snap := &snapstore.MockSnapshotStore{}
	mgr := &snapstore.MockStoreManager{}
	mgr.On("GetSnapshotStore").Return(snap)
	snap.On("BeginSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("store offline"))

	res := &schema.MapResult{Metric: schema.MetricCO2, Mode: schema.ValueMode}
	err := recordSnapshot(mgr, res)
	require.ErrorContains(t, err, "store offline")
}

func TestExecuteIngestPutsAllObservations(t *testing.T) {
	dir := t.TempDir()
	fixture := "iso3,country,year,co2_pc,energy_pc,water_basic_pct,sanitation_pct,gdp_pc,temp_anom\n" +
		"USA,United States,2000,20.1,,,,,\n" +
		"USA,United States,2023,14.9,,,,,\n" +
		"BRA,Brazil,2023,2.21,,,,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core_merged.csv"), []byte(fixture), 0o644))

	obs := &snapstore.MockObservationStore{}
	mgr := &snapstore.MockStoreManager{}
	mgr.On("GetObservationStore").Return(obs)
	obs.On("PutObservations", mock.MatchedBy(func(rows []schema.Observation) bool {
		return len(rows) == 3
	})).Return(nil)

	cfg := &contract.Config{
		DataDir:   dir,
		Output:    schema.JSONOut,
		Precision: 1,
	}
	require.NoError(t, ExecuteIngest(cfg, mgr))
	obs.AssertExpectations(t)
}
