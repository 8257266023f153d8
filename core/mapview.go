package core

import (
	"sort"

	"climatlas/schema"
)

// BuildMap computes the map (choropleth surrogate) view: one derived value
// per country under the current state, ranked descending. Countries without
// a derivable value trail the ranking with a nil value.
func BuildMap(ds *schema.Dataset, st *schema.ViewState, regions map[string]string, matchRate float64, limit int) *schema.MapResult {
	var ranked, missing []schema.MapRow
	for _, iso3 := range ds.SortedISO3() {
		s := ds.Countries[iso3]
		row := schema.MapRow{
			ISO3:    iso3,
			Country: s.Country,
			Region:  regions[iso3],
			Pinned:  st.IsPinned(iso3),
		}
		if v, ok := Derive(s, st); ok {
			value := v
			row.Value = &value
			ranked = append(ranked, row)
		} else {
			missing = append(missing, row)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Value > *ranked[j].Value
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	rows := append(ranked, missing...)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return &schema.MapResult{
		Metric:     st.Metric,
		Mode:       st.Mode,
		Year:       st.Year,
		BrushStart: st.BrushStart,
		BrushEnd:   st.BrushEnd,
		Rows:       rows,
		Ranked:     len(ranked),
		MatchRate:  matchRate,
	}
}
