package core

import "climatlas/schema"

// BuildCheck runs the data-health gate: for each metric, the share of
// countries with at least one finite value inside the brush window, checked
// against the configured coverage thresholds.
func BuildCheck(ds *schema.Dataset, st *schema.ViewState, thresholds map[schema.Metric]float64) *schema.CheckResult {
	res := &schema.CheckResult{
		Passed:     true,
		BrushStart: st.BrushStart,
		BrushEnd:   st.BrushEnd,
	}
	total := len(ds.Countries)

	for _, m := range schema.AllMetrics {
		covered := 0
		for _, s := range ds.Countries {
			if _, _, ok := brushEndpoints(s, m, st.BrushStart, st.BrushEnd); ok {
				covered++
			}
		}
		share := 0.0
		if total > 0 {
			share = float64(covered) / float64(total)
		}
		row := schema.CoverageRow{
			Metric:    m,
			Covered:   covered,
			Total:     total,
			Share:     share,
			Threshold: thresholds[m],
			Passed:    share >= thresholds[m],
		}
		if !row.Passed {
			res.Passed = false
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}
