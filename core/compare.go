package core

import (
	"sort"

	"climatlas/schema"

	"climatlas/internal/contract"
)

// BuildCompare computes the two-metric compare lab. Both axes share the
// state's display mode. When a selection rectangle is given, the selected set
// is replaced wholesale with the countries inside it; a rectangle containing
// no points yields an empty selection, not a no-op.
func BuildCompare(ds *schema.Dataset, st *schema.ViewState, x, y schema.Metric, rect *contract.SelectRect) *schema.CompareResult {
	type point struct {
		iso3 string
		x, y float64
	}
	var points []point
	var rows []schema.CompareRow

	for _, iso3 := range ds.SortedISO3() {
		s := ds.Countries[iso3]
		row := schema.CompareRow{
			ISO3:    iso3,
			Country: s.Country,
			Pinned:  st.IsPinned(iso3),
		}
		xv, okX := DeriveMetric(s, x, st)
		yv, okY := DeriveMetric(s, y, st)
		if okX {
			v := xv
			row.X = &v
		}
		if okY {
			v := yv
			row.Y = &v
		}
		if okX && okY {
			points = append(points, point{iso3: iso3, x: xv, y: yv})
		}
		rows = append(rows, row)
	}

	if rect != nil {
		var inside []string
		for _, p := range points {
			if rect.Contains(p.x, p.y) {
				inside = append(inside, p.iso3)
			}
		}
		Apply(st, ReplaceSelection{ISO3: inside})
	}

	var selected []string
	for i := range rows {
		rows[i].Selected = st.IsSelected(rows[i].ISO3)
		if rows[i].Selected {
			selected = append(selected, rows[i].ISO3)
		}
	}
	sort.Strings(selected)

	return &schema.CompareResult{
		XMetric:  x,
		YMetric:  y,
		Mode:     st.Mode,
		Rows:     rows,
		Selected: selected,
	}
}
