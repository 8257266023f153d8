// Package schema has models, constants and shared state for all parts of climatlas.
package schema

import (
	"math"
	"sort"
)

// Observation is one (country, year) record from the merged indicator table.
// Metric fields are nil when the source cell was empty or non-numeric.
// Observations are immutable once loaded.
type Observation struct {
	ISO3          string   // Three-letter country code, the primary entity key
	Country       string   // Display name from the source table
	Year          int      // Calendar year
	CO2PC         *float64 // co2_pc
	EnergyPC      *float64 // energy_pc
	WaterBasicPct *float64 // water_basic_pct
	SanitationPct *float64 // sanitation_pct
	GDPPC         *float64 // gdp_pc
	TempAnom      *float64 // temp_anom
}

// Value returns the named metric field and whether it holds a finite number.
// NaN and infinities from the source data count as absent.
func (o *Observation) Value(m Metric) (float64, bool) {
	var p *float64
	switch m {
	case MetricCO2:
		p = o.CO2PC
	case MetricEnergy:
		p = o.EnergyPC
	case MetricWater:
		p = o.WaterBasicPct
	case MetricSanitation:
		p = o.SanitationPct
	case MetricGDP:
		p = o.GDPPC
	case MetricTempAnom:
		p = o.TempAnom
	default:
		return 0, false
	}
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// SetValue assigns the named metric field. Used only while building a dataset.
func (o *Observation) SetValue(m Metric, v float64) {
	switch m {
	case MetricCO2:
		o.CO2PC = &v
	case MetricEnergy:
		o.EnergyPC = &v
	case MetricWater:
		o.WaterBasicPct = &v
	case MetricSanitation:
		o.SanitationPct = &v
	case MetricGDP:
		o.GDPPC = &v
	case MetricTempAnom:
		o.TempAnom = &v
	}
}

// CountrySeries holds the ordered observations for one ISO3 code.
// Observations are sorted ascending by year, and a year index is built once
// at load time so value lookups never scan the slice.
type CountrySeries struct {
	ISO3    string
	Country string
	Obs     []Observation

	yearIdx map[int]int
}

// NewCountrySeries builds a series from unsorted observations for one country.
func NewCountrySeries(iso3, country string, obs []Observation) *CountrySeries {
	sort.Slice(obs, func(i, j int) bool { return obs[i].Year < obs[j].Year })
	idx := make(map[int]int, len(obs))
	for i, o := range obs {
		idx[o.Year] = i
	}
	return &CountrySeries{ISO3: iso3, Country: country, Obs: obs, yearIdx: idx}
}

// At returns the observation for the given year via the year index.
func (s *CountrySeries) At(year int) (*Observation, bool) {
	i, ok := s.yearIdx[year]
	if !ok {
		return nil, false
	}
	return &s.Obs[i], true
}

// FirstYear returns the earliest year in the series.
func (s *CountrySeries) FirstYear() int {
	if len(s.Obs) == 0 {
		return 0
	}
	return s.Obs[0].Year
}

// LastYear returns the latest year in the series.
func (s *CountrySeries) LastYear() int {
	if len(s.Obs) == 0 {
		return 0
	}
	return s.Obs[len(s.Obs)-1].Year
}

// Dataset is the in-memory indicator table keyed by ISO3 code.
// It is built once at load time and never mutated afterwards.
type Dataset struct {
	Countries map[string]*CountrySeries
	MinYear   int
	MaxYear   int

	sorted []string
}

// NewDataset assembles a dataset from per-country series and records the
// overall year range.
func NewDataset(countries map[string]*CountrySeries) *Dataset {
	ds := &Dataset{Countries: countries}
	first := true
	for iso3, s := range countries {
		ds.sorted = append(ds.sorted, iso3)
		if len(s.Obs) == 0 {
			continue
		}
		if first {
			ds.MinYear = s.FirstYear()
			ds.MaxYear = s.LastYear()
			first = false
			continue
		}
		if y := s.FirstYear(); y < ds.MinYear {
			ds.MinYear = y
		}
		if y := s.LastYear(); y > ds.MaxYear {
			ds.MaxYear = y
		}
	}
	sort.Strings(ds.sorted)
	return ds
}

// SortedISO3 returns all country codes in lexical order.
func (ds *Dataset) SortedISO3() []string {
	return ds.sorted
}

// Series returns the series for an ISO3 code.
func (ds *Dataset) Series(iso3 string) (*CountrySeries, bool) {
	s, ok := ds.Countries[iso3]
	return s, ok
}

// ClampYear forces a year into the loaded range.
func (ds *Dataset) ClampYear(year int) int {
	if year < ds.MinYear {
		return ds.MinYear
	}
	if year > ds.MaxYear {
		return ds.MaxYear
	}
	return year
}

// GlobalTempRecord is one row of the optional monthly global-anomaly table.
type GlobalTempRecord struct {
	Year     int
	MonthIdx int // 1-12
	Anomaly  float64
}
