package core

import (
	"sort"

	"climatlas/schema"
)

// BuildStripes groups the monthly global anomaly records into one row per
// year inside the brush window, with a per-year mean over the months present.
func BuildStripes(recs []schema.GlobalTempRecord, st *schema.ViewState) *schema.StripesResult {
	byYear := make(map[int][]*float64)
	for _, rec := range recs {
		if rec.Year < st.BrushStart || rec.Year > st.BrushEnd {
			continue
		}
		months := byYear[rec.Year]
		if months == nil {
			months = make([]*float64, 12)
			byYear[rec.Year] = months
		}
		anom := rec.Anomaly
		months[rec.MonthIdx-1] = &anom
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	res := &schema.StripesResult{}
	for _, year := range years {
		months := byYear[year]
		sum, count := 0.0, 0
		for _, m := range months {
			if m != nil {
				sum += *m
				count++
			}
		}
		row := schema.StripeYear{Year: year, Months: months}
		if count > 0 {
			mean := sum / float64(count)
			row.Mean = &mean
		}
		res.Years = append(res.Years, row)
	}
	return res
}
