package core

import (
	"testing"

	"climatlas/schema"

	"climatlas/internal/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMapRanksDescending(t *testing.T) {
	ds := testDataset()
	st := schema.NewViewState(ds)
	Apply(st, TogglePin{ISO3: "BRA"})

	res := BuildMap(ds, st, map[string]string{"USA": "Americas"}, 1.0/3.0, 25)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, 3, res.Ranked)
	assert.Equal(t, "USA", res.Rows[0].ISO3)
	assert.Equal(t, 1, res.Rows[0].Rank)
	assert.Equal(t, "Americas", res.Rows[0].Region)
	assert.Equal(t, "NOR", res.Rows[1].ISO3)
	assert.Equal(t, "BRA", res.Rows[2].ISO3)
	assert.True(t, res.Rows[2].Pinned)
	assert.InDelta(t, 1.0/3.0, res.MatchRate, 1e-9)
}

func TestBuildMapMissingValuesTrail(t *testing.T) {
	ds := testDataset()
	st := schema.NewViewState(ds)
	Apply(st, SetMetric{Metric: schema.MetricGDP}) // no country reports gdp

	res := BuildMap(ds, st, nil, -1, 25)
	require.Len(t, res.Rows, 3)
	assert.Zero(t, res.Ranked)
	for _, row := range res.Rows {
		assert.Nil(t, row.Value)
		assert.Zero(t, row.Rank)
	}
	assert.Equal(t, -1.0, res.MatchRate)
}

func TestBuildMapAppliesLimit(t *testing.T) {
	ds := testDataset()
	st := schema.NewViewState(ds)

	res := BuildMap(ds, st, nil, -1, 2)
	assert.Len(t, res.Rows, 2)
	assert.Equal(t, 3, res.Ranked, "ranked count reflects the full view, not the page")
}

func TestBuildTrend(t *testing.T) {
	ds := testDataset()
	st := schema.NewViewState(ds)

	res := BuildTrend(ds, st)
	require.Len(t, res.Points, 3, "only years with reporting countries appear")

	first := res.Points[0]
	assert.Equal(t, 2000, first.Year)
	assert.Equal(t, 3, first.Count)
	assert.InDelta(t, (20.1+1.85+8.6)/3, first.Mean, 1e-9)

	require.NotNil(t, res.BrushDelta)
	require.NotNil(t, res.BrushSlope)
	last := res.Points[len(res.Points)-1]
	assert.InDelta(t, last.Mean-first.Mean, *res.BrushDelta, 1e-9)
	assert.InDelta(t, *res.BrushDelta/23.0, *res.BrushSlope, 1e-9)
}

func TestBuildTrendSingleYearBrushHasNoSummary(t *testing.T) {
	ds := testDataset()
	st := schema.NewViewState(ds)
	st.BrushStart, st.BrushEnd = 2010, 2010

	res := BuildTrend(ds, st)
	assert.Nil(t, res.BrushDelta)
	assert.Nil(t, res.BrushSlope)
}

func compareDataset() *schema.Dataset {
	mk := func(iso3, name string, co2, gdp map[int]float64) *schema.CountrySeries {
		var obs []schema.Observation
		years := map[int]struct{}{}
		for y := range co2 {
			years[y] = struct{}{}
		}
		for y := range gdp {
			years[y] = struct{}{}
		}
		for y := range years {
			o := schema.Observation{ISO3: iso3, Country: name, Year: y}
			if v, ok := co2[y]; ok {
				o.SetValue(schema.MetricCO2, v)
			}
			if v, ok := gdp[y]; ok {
				o.SetValue(schema.MetricGDP, v)
			}
			obs = append(obs, o)
		}
		return schema.NewCountrySeries(iso3, name, obs)
	}
	return schema.NewDataset(map[string]*schema.CountrySeries{
		"USA": mk("USA", "United States",
			map[int]float64{2000: 20.1, 2023: 14.9},
			map[int]float64{2000: 45887, 2023: 61852}),
		"BRA": mk("BRA", "Brazil",
			map[int]float64{2000: 1.85, 2023: 2.21},
			map[int]float64{2000: 11250, 2023: 14870}),
		"TCD": mk("TCD", "Chad",
			map[int]float64{2000: 0.05, 2023: 0.09},
			nil),
	})
}

func TestBuildCompareSelection(t *testing.T) {
	ds := compareDataset()
	st := schema.NewViewState(ds)
	Apply(st, SelectScene{Scene: schema.CompareScene})
	require.Equal(t, schema.SlopeMode, st.Mode)

	// Rectangle around positive gdp slopes with falling co2.
	rect := &contract.SelectRect{X0: 0, X1: 1000, Y0: -1, Y1: 0}
	res := BuildCompare(ds, st, schema.MetricGDP, schema.MetricCO2, rect)

	assert.Equal(t, []string{"USA"}, res.Selected)
	assert.True(t, st.IsSelected("USA"))
	assert.False(t, st.IsSelected("BRA"))

	require.Len(t, res.Rows, 3)
	for _, row := range res.Rows {
		if row.ISO3 == "TCD" {
			assert.Nil(t, row.X, "countries missing an axis metric keep a nil coordinate")
			assert.NotNil(t, row.Y)
		}
	}
}

func TestBuildCompareEmptyRectangleClearsSelection(t *testing.T) {
	ds := compareDataset()
	st := schema.NewViewState(ds)
	Apply(st, SelectScene{Scene: schema.CompareScene})
	Apply(st, ReplaceSelection{ISO3: []string{"USA", "BRA"}})

	// A rectangle far outside the point cloud selects nothing.
	rect := &contract.SelectRect{X0: 1e9, X1: 2e9, Y0: 1e9, Y1: 2e9}
	res := BuildCompare(ds, st, schema.MetricGDP, schema.MetricCO2, rect)

	assert.Empty(t, res.Selected)
	assert.Empty(t, st.Selected, "an empty rectangle yields an empty selection")
}

func TestBuildCompareWithoutRectangleKeepsSelection(t *testing.T) {
	ds := compareDataset()
	st := schema.NewViewState(ds)
	Apply(st, SelectScene{Scene: schema.CompareScene})
	Apply(st, ReplaceSelection{ISO3: []string{"BRA"}})

	res := BuildCompare(ds, st, schema.MetricGDP, schema.MetricCO2, nil)
	assert.Equal(t, []string{"BRA"}, res.Selected)
}

func TestBuildFocus(t *testing.T) {
	ds := compareDataset()
	st := schema.NewViewState(ds)

	res, err := BuildFocus(ds, st, "usa")
	require.NoError(t, err)
	assert.Equal(t, "USA", res.ISO3)
	assert.Equal(t, "United States", res.Country)
	require.Len(t, res.Metrics, len(schema.AllMetrics))

	var co2 schema.FocusMetric
	for _, fm := range res.Metrics {
		if fm.Metric == schema.MetricCO2 {
			co2 = fm
		}
	}
	require.NotNil(t, co2.Value)
	assert.InDelta(t, 14.9, *co2.Value, 1e-9)
	require.NotNil(t, co2.Delta)
	assert.InDelta(t, -5.2, *co2.Delta, 1e-9)
	require.NotNil(t, co2.Slope)
	assert.InDelta(t, -0.226, *co2.Slope, 0.001)
	assert.NotEmpty(t, co2.Spark)

	_, err = BuildFocus(ds, st, "ZWE")
	assert.Error(t, err, "unknown country is an error, not a panic")
}

func TestSparkline(t *testing.T) {
	s := seriesFromPairs("USA", "United States", schema.MetricCO2, map[int]float64{
		2000: 0, 2001: 5, 2002: 10,
	})
	spark := sparkline(s, schema.MetricCO2, 2000, 2003)
	require.Equal(t, 4, len([]rune(spark)), "one rune per in-window year")
	runes := []rune(spark)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[2])
	assert.Equal(t, ' ', runes[3], "missing year renders as a gap")

	assert.Empty(t, sparkline(s, schema.MetricGDP, 2000, 2003))
}

func TestBuildStripes(t *testing.T) {
	recs := []schema.GlobalTempRecord{
		{Year: 2000, MonthIdx: 1, Anomaly: 0.30},
		{Year: 2000, MonthIdx: 2, Anomaly: 0.50},
		{Year: 2001, MonthIdx: 6, Anomaly: 0.45},
		{Year: 1999, MonthIdx: 1, Anomaly: 0.20}, // outside the brush
	}
	ds := testDataset()
	st := schema.NewViewState(ds)

	res := BuildStripes(recs, st)
	require.Len(t, res.Years, 2)
	assert.Equal(t, 2000, res.Years[0].Year)
	require.NotNil(t, res.Years[0].Mean)
	assert.InDelta(t, 0.40, *res.Years[0].Mean, 1e-9)
	require.NotNil(t, res.Years[0].Months[0])
	assert.Nil(t, res.Years[0].Months[11])
}

func TestBuildCheck(t *testing.T) {
	ds := testDataset() // co2 fully covered, everything else absent
	st := schema.NewViewState(ds)
	thresholds := map[schema.Metric]float64{
		schema.MetricCO2: 0.5,
		schema.MetricGDP: 0.5,
	}

	res := BuildCheck(ds, st, thresholds)
	assert.False(t, res.Passed)

	byMetric := map[schema.Metric]schema.CoverageRow{}
	for _, row := range res.Rows {
		byMetric[row.Metric] = row
	}
	assert.True(t, byMetric[schema.MetricCO2].Passed)
	assert.InDelta(t, 1.0, byMetric[schema.MetricCO2].Share, 1e-9)
	assert.False(t, byMetric[schema.MetricGDP].Passed)
	assert.Zero(t, byMetric[schema.MetricGDP].Covered)

	// Zero thresholds pass trivially.
	res = BuildCheck(ds, st, map[schema.Metric]float64{})
	assert.True(t, res.Passed)
}
