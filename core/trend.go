package core

import "climatlas/schema"

// BuildTrend computes the global timeline: the cross-country mean of the
// active metric for every year with at least one reporting country, plus the
// delta and slope of those yearly means over the brush window.
func BuildTrend(ds *schema.Dataset, st *schema.ViewState) *schema.TrendResult {
	res := &schema.TrendResult{
		Metric:     st.Metric,
		BrushStart: st.BrushStart,
		BrushEnd:   st.BrushEnd,
	}

	for year := ds.MinYear; year <= ds.MaxYear; year++ {
		sum, count := 0.0, 0
		for _, s := range ds.Countries {
			if v, ok := ValueAt(s, st.Metric, year); ok {
				sum += v
				count++
			}
		}
		if count == 0 {
			continue
		}
		res.Points = append(res.Points, schema.TrendPoint{
			Year:  year,
			Mean:  sum / float64(count),
			Count: count,
		})
	}

	// Brush summary from the first and last in-window yearly means.
	var first, last *schema.TrendPoint
	for i := range res.Points {
		p := &res.Points[i]
		if p.Year < st.BrushStart || p.Year > st.BrushEnd {
			continue
		}
		if first == nil {
			first = p
		}
		last = p
	}
	if first != nil && last != nil && last.Year > first.Year {
		delta := last.Mean - first.Mean
		slope := delta / float64(last.Year-first.Year)
		res.BrushDelta = &delta
		res.BrushSlope = &slope
	}
	return res
}
