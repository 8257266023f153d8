package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"climatlas/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coreSample = `iso3,country,year,co2_pc,energy_pc,water_basic_pct,sanitation_pct,gdp_pc,temp_anom
USA,United States,2000,20.1,81000,98.9,99.2,45887,0.42
USA,United States,2023,14.9,76500,99.1,99.4,61852,1.31
BRA,Brazil,2000,1.85,13500,92.1,74.9,11250,0.21
BRA,Brazil,2023,2.21,16800,,85.3,14870,0.95
OWID_WRL,World,2000,4.1,,,,,,
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CoreFileName, coreSample)

	ds, err := LoadDataset(dir)
	require.NoError(t, err)

	assert.Equal(t, 2000, ds.MinYear)
	assert.Equal(t, 2023, ds.MaxYear)
	assert.Len(t, ds.Countries, 2, "aggregate rows without ISO3 codes are dropped")

	usa, ok := ds.Series("USA")
	require.True(t, ok)
	assert.Equal(t, "United States", usa.Country)

	obs, ok := usa.At(2000)
	require.True(t, ok)
	v, ok := obs.Value(schema.MetricCO2)
	require.True(t, ok)
	assert.Equal(t, 20.1, v)

	bra, _ := ds.Series("BRA")
	obs, _ = bra.At(2023)
	_, ok = obs.Value(schema.MetricWater)
	assert.False(t, ok, "empty cell loads as missing")
}

func TestLoadDatasetFatalPaths(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDataset(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("no year column", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, CoreFileName, "iso3,country,co2_pc\nUSA,United States,20.1\n")
		_, err := LoadDataset(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoYearColumn)
	})

	t.Run("empty table", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, CoreFileName, "iso3,country,year,co2_pc\n")
		_, err := LoadDataset(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyTable)
	})
}

func TestParseCoreSkipsMalformedRows(t *testing.T) {
	in := strings.Join([]string{
		"iso3,country,year,co2_pc",
		"USA,United States,2000,20.1",
		"USA,United States,not-a-year,15.0",
		"us,United States,2001,19.8",
		"DEU,Germany,2001,not-a-number",
	}, "\n")

	ds, err := parseCore(strings.NewReader(in))
	require.NoError(t, err)

	usa, ok := ds.Series("USA")
	require.True(t, ok)
	assert.Len(t, usa.Obs, 1)

	deu, ok := ds.Series("DEU")
	require.True(t, ok)
	obs, _ := deu.At(2001)
	_, ok = obs.Value(schema.MetricCO2)
	assert.False(t, ok, "malformed cell is missing data, not an error")
}

func TestLoadGlobalTemp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, GlobalTempFileName,
		"month,year,temp_anom,month_idx\nJanuary,2000,0.32,1.0\nFebruary,2000,0.41,2.0\nJanuary,2001,0.29,1.0\n")

	recs, err := LoadGlobalTemp(dir)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, schema.GlobalTempRecord{Year: 2000, MonthIdx: 2, Anomaly: 0.41}, recs[1])
}

func TestLoadGlobalTempRecoverablePaths(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadGlobalTemp(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("missing columns", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, GlobalTempFileName, "month,year\nJanuary,2000\n")
		_, err := LoadGlobalTemp(dir)
		assert.Error(t, err)
	})

	t.Run("no usable rows", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, GlobalTempFileName, "month,year,temp_anom,month_idx\nJanuary,bad,0.3,1\n")
		_, err := LoadGlobalTemp(dir)
		assert.Error(t, err)
	})
}

func TestLoadRegionsAndMatchRate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CoreFileName, coreSample)
	writeFile(t, dir, RegionsFileName, "iso3,region\nUSA,Americas\nFRA,Europe\n")

	ds, err := LoadDataset(dir)
	require.NoError(t, err)

	regions, err := LoadRegions(dir)
	require.NoError(t, err)
	assert.Equal(t, "Americas", regions["USA"])

	// USA matches, BRA misses: rate is 0.5.
	assert.InDelta(t, 0.5, MatchRate(ds, regions), 1e-9)

	// Absent reference file disables the diagnostic entirely.
	missing, err := LoadRegions(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Equal(t, -1.0, MatchRate(ds, missing))
}
