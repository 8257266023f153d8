package core

import (
	"fmt"

	"climatlas/schema"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// BuildFocus computes the per-country focus panel: for every metric, the
// value at the current year plus delta and slope over the brush window, with
// a sparkline of the in-window series.
func BuildFocus(ds *schema.Dataset, st *schema.ViewState, iso3 string) (*schema.FocusResult, error) {
	iso3 = schema.NormalizeISO3(iso3)
	s, ok := ds.Series(iso3)
	if !ok {
		return nil, fmt.Errorf("no data for country code %s", iso3)
	}

	res := &schema.FocusResult{
		ISO3:       iso3,
		Country:    s.Country,
		Year:       st.Year,
		BrushStart: st.BrushStart,
		BrushEnd:   st.BrushEnd,
		Pinned:     st.IsPinned(iso3),
	}
	for _, m := range schema.AllMetrics {
		fm := schema.FocusMetric{Metric: m}
		if v, ok := ValueAt(s, m, st.Year); ok {
			value := v
			fm.Value = &value
		}
		if d, ok := DeltaOver(s, m, st.BrushStart, st.BrushEnd); ok {
			delta := d
			fm.Delta = &delta
		}
		if sl, ok := SlopeOver(s, m, st.BrushStart, st.BrushEnd); ok {
			slope := sl
			fm.Slope = &slope
		}
		fm.Spark = sparkline(s, m, st.BrushStart, st.BrushEnd)
		res.Metrics = append(res.Metrics, fm)
	}
	return res, nil
}

// sparkline renders one rune per in-window year, scaled to the window's own
// min/max. Missing years render as spaces so gaps stay visible.
func sparkline(s *schema.CountrySeries, m schema.Metric, start, end int) string {
	values := make([]*float64, 0, end-start+1)
	min, max := 0.0, 0.0
	found := false
	for year := start; year <= end; year++ {
		v, ok := ValueAt(s, m, year)
		if !ok {
			values = append(values, nil)
			continue
		}
		vv := v
		values = append(values, &vv)
		if !found || v < min {
			min = v
		}
		if !found || v > max {
			max = v
		}
		found = true
	}
	if !found {
		return ""
	}

	out := make([]rune, len(values))
	span := max - min
	for i, v := range values {
		if v == nil {
			out[i] = ' '
			continue
		}
		level := 0
		if span > 0 {
			level = int((*v - min) / span * float64(len(sparkLevels)-1))
		}
		out[i] = sparkLevels[level]
	}
	return string(out)
}
