// Package dataset loads the merged indicator table and its optional
// companion files into the in-memory model.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"climatlas/schema"
)

// File names expected inside the data directory. These match the output of
// the data-prep pipeline.
const (
	CoreFileName       = "core_merged.csv"
	GlobalTempFileName = "global_temp_monthly.csv"
	RegionsFileName    = "regions.csv"
)

// ErrNoYearColumn is returned when the primary table has no usable year column.
var ErrNoYearColumn = errors.New("primary table has no usable year column")

// ErrEmptyTable is returned when the primary table has a header but no rows.
var ErrEmptyTable = errors.New("primary table has no data rows")

// LoadDataset reads the primary indicator table. A missing or unusable file
// is fatal to startup and reported as an error; callers must not continue.
func LoadDataset(dataDir string) (*schema.Dataset, error) {
	path := filepath.Join(dataDir, CoreFileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open primary indicator table %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := parseCore(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load primary indicator table %s: %w", path, err)
	}
	return ds, nil
}

// parseCore builds a Dataset from the merged CSV. Column positions are
// resolved from the header by name, so column order does not matter.
func parseCore(r io.Reader) (*schema.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are skipped below, not fatal

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	yearCol, ok := idx["year"]
	if !ok {
		return nil, ErrNoYearColumn
	}
	isoCol, ok := idx["iso3"]
	if !ok {
		return nil, errors.New("primary table has no iso3 column")
	}
	countryCol, hasCountry := idx["country"]

	metricCols := make(map[schema.Metric]int)
	for _, m := range schema.AllMetrics {
		if i, ok := idx[string(m)]; ok {
			metricCols[m] = i
		}
	}

	type bucket struct {
		country string
		obs     []schema.Observation
	}
	buckets := make(map[string]*bucket)
	rows := 0

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if len(rec) <= yearCol || len(rec) <= isoCol {
			continue
		}

		iso3 := schema.NormalizeISO3(rec[isoCol])
		if !schema.IsISO3(iso3) {
			continue // aggregates and regions carry no ISO3 code
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[yearCol]))
		if err != nil {
			continue
		}

		obs := schema.Observation{ISO3: iso3, Year: year}
		if hasCountry && len(rec) > countryCol {
			obs.Country = strings.TrimSpace(rec[countryCol])
		}
		for m, col := range metricCols {
			if len(rec) <= col {
				continue
			}
			cell := strings.TrimSpace(rec[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue // a malformed cell is a missing value, not an error
			}
			obs.SetValue(m, v)
		}

		b := buckets[iso3]
		if b == nil {
			b = &bucket{}
			buckets[iso3] = b
		}
		if b.country == "" {
			b.country = obs.Country
		}
		b.obs = append(b.obs, obs)
		rows++
	}

	if rows == 0 {
		return nil, ErrEmptyTable
	}

	countries := make(map[string]*schema.CountrySeries, len(buckets))
	for iso3, b := range buckets {
		countries[iso3] = schema.NewCountrySeries(iso3, b.country, b.obs)
	}
	return schema.NewDataset(countries), nil
}

// LoadGlobalTemp reads the optional monthly global-anomaly table. Any failure
// here is recoverable: the caller disables the stripes view and continues.
func LoadGlobalTemp(dataDir string) ([]schema.GlobalTempRecord, error) {
	path := filepath.Join(dataDir, GlobalTempFileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open global temperature table %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return parseGlobalTemp(f)
}

// parseGlobalTemp reads rows of (month, year, temp_anom, month_idx).
func parseGlobalTemp(r io.Reader) ([]schema.GlobalTempRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	yearCol, okY := idx["year"]
	anomCol, okA := idx["temp_anom"]
	monthCol, okM := idx["month_idx"]
	if !okY || !okA || !okM {
		return nil, errors.New("global temperature table is missing year, temp_anom or month_idx columns")
	}

	var out []schema.GlobalTempRecord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if len(rec) <= yearCol || len(rec) <= anomCol || len(rec) <= monthCol {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[yearCol]))
		if err != nil {
			continue
		}
		// month_idx arrives as a float from the data-prep pipeline
		monthF, err := strconv.ParseFloat(strings.TrimSpace(rec[monthCol]), 64)
		if err != nil {
			continue
		}
		month := int(monthF)
		if month < 1 || month > 12 {
			continue
		}
		anom, err := strconv.ParseFloat(strings.TrimSpace(rec[anomCol]), 64)
		if err != nil {
			continue
		}
		out = append(out, schema.GlobalTempRecord{Year: year, MonthIdx: month, Anomaly: anom})
	}
	if len(out) == 0 {
		return nil, errors.New("global temperature table has no usable rows")
	}
	return out, nil
}

// LoadRegions reads the optional region reference used by the map view's
// match-rate diagnostic. A missing file returns (nil, nil): the diagnostic
// is simply skipped.
func LoadRegions(dataDir string) (map[string]string, error) {
	path := filepath.Join(dataDir, RegionsFileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot open region reference %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	isoCol, okI := idx["iso3"]
	regionCol, okR := idx["region"]
	if !okI || !okR {
		return nil, errors.New("region reference is missing iso3 or region columns")
	}

	regions := make(map[string]string)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if len(rec) <= isoCol || len(rec) <= regionCol {
			continue
		}
		iso3 := schema.NormalizeISO3(rec[isoCol])
		if !schema.IsISO3(iso3) {
			continue
		}
		regions[iso3] = strings.TrimSpace(rec[regionCol])
	}
	return regions, nil
}

// MatchRate returns the share of dataset countries present in the region
// reference, or -1 when no reference is loaded. Misses are dropped from the
// map layer silently; this rate is the only diagnostic surfaced.
func MatchRate(ds *schema.Dataset, regions map[string]string) float64 {
	if regions == nil {
		return -1
	}
	total := len(ds.Countries)
	if total == 0 {
		return 0
	}
	matched := 0
	for iso3 := range ds.Countries {
		if _, ok := regions[iso3]; ok {
			matched++
		}
	}
	return float64(matched) / float64(total)
}
