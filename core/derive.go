// Package core has the derived-value engine, selection state and view logic.
package core

import "climatlas/schema"

// ValueAt returns the metric value for a country at a year, using the
// year index built at load time. Reports false when the observation or the
// field is missing.
func ValueAt(s *schema.CountrySeries, m schema.Metric, year int) (float64, bool) {
	obs, ok := s.At(year)
	if !ok {
		return 0, false
	}
	return obs.Value(m)
}

// endpoint is a (year, value) pair found at one end of a brush window.
type endpoint struct {
	year  int
	value float64
}

// brushEndpoints scans the brush window for the first and last observations
// carrying a finite value for the metric. Endpoints are found independently
// per metric: a country can have a usable pair for one metric and none for
// another.
func brushEndpoints(s *schema.CountrySeries, m schema.Metric, start, end int) (first, last endpoint, ok bool) {
	foundFirst := false
	for i := range s.Obs {
		o := &s.Obs[i]
		if o.Year < start {
			continue
		}
		if o.Year > end {
			break
		}
		v, fin := o.Value(m)
		if !fin {
			continue
		}
		if !foundFirst {
			first = endpoint{year: o.Year, value: v}
			foundFirst = true
		}
		last = endpoint{year: o.Year, value: v}
	}
	if !foundFirst {
		return endpoint{}, endpoint{}, false
	}
	return first, last, true
}

// DeltaOver returns last minus first finite value inside the brush window.
// Reports false when either endpoint is missing.
func DeltaOver(s *schema.CountrySeries, m schema.Metric, start, end int) (float64, bool) {
	first, last, ok := brushEndpoints(s, m, start, end)
	if !ok {
		return 0, false
	}
	return last.value - first.value, true
}

// SlopeOver returns the per-year rate of change over the brush window.
// Reports false when the endpoints are missing or span zero years.
func SlopeOver(s *schema.CountrySeries, m schema.Metric, start, end int) (float64, bool) {
	first, last, ok := brushEndpoints(s, m, start, end)
	if !ok || last.year == first.year {
		return 0, false
	}
	return (last.value - first.value) / float64(last.year-first.year), true
}

// Derive maps a country to the single scalar shown by the current view state:
// value at the year, delta over the brush, or slope over the brush.
func Derive(s *schema.CountrySeries, st *schema.ViewState) (float64, bool) {
	switch st.Mode {
	case schema.DeltaMode:
		return DeltaOver(s, st.Metric, st.BrushStart, st.BrushEnd)
	case schema.SlopeMode:
		return SlopeOver(s, st.Metric, st.BrushStart, st.BrushEnd)
	default:
		return ValueAt(s, st.Metric, st.Year)
	}
}

// DeriveMetric is Derive with an explicit metric, used by the compare lab
// where two metrics share one mode.
func DeriveMetric(s *schema.CountrySeries, m schema.Metric, st *schema.ViewState) (float64, bool) {
	switch st.Mode {
	case schema.DeltaMode:
		return DeltaOver(s, m, st.BrushStart, st.BrushEnd)
	case schema.SlopeMode:
		return SlopeOver(s, m, st.BrushStart, st.BrushEnd)
	default:
		return ValueAt(s, m, st.Year)
	}
}
