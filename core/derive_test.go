package core

import (
	"testing"

	"climatlas/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

// seriesFromPairs builds a single-metric series for tests.
func seriesFromPairs(iso3, country string, m schema.Metric, pairs map[int]float64) *schema.CountrySeries {
	var obs []schema.Observation
	for year, v := range pairs {
		o := schema.Observation{ISO3: iso3, Country: country, Year: year}
		o.SetValue(m, v)
		obs = append(obs, o)
	}
	return schema.NewCountrySeries(iso3, country, obs)
}

func usaSeries() *schema.CountrySeries {
	return seriesFromPairs("USA", "United States", schema.MetricCO2, map[int]float64{
		2000: 20.1,
		2010: 17.4,
		2023: 14.9,
	})
}

func TestDeltaAndSlopeOverFullRange(t *testing.T) {
	s := usaSeries()

	delta, ok := DeltaOver(s, schema.MetricCO2, 2000, 2023)
	require.True(t, ok)
	assert.InDelta(t, -5.2, delta, 1e-9)

	slope, ok := SlopeOver(s, schema.MetricCO2, 2000, 2023)
	require.True(t, ok)
	assert.InDelta(t, -5.2/23.0, slope, 1e-9)
	assert.InDelta(t, -0.226, slope, 0.001)
}

func TestDeltaEqualsSlopeTimesSpan(t *testing.T) {
	s := seriesFromPairs("NOR", "Norway", schema.MetricGDP, map[int]float64{
		2003: 51000, 2007: 62000, 2012: 65500, 2019: 71200,
	})

	windows := [][2]int{{2003, 2019}, {2003, 2012}, {2005, 2019}, {2007, 2012}}
	for _, w := range windows {
		delta, okD := DeltaOver(s, schema.MetricGDP, w[0], w[1])
		slope, okS := SlopeOver(s, schema.MetricGDP, w[0], w[1])
		require.True(t, okD)
		require.True(t, okS)

		first, last, ok := brushEndpoints(s, schema.MetricGDP, w[0], w[1])
		require.True(t, ok)
		assert.InDelta(t, delta, slope*float64(last.year-first.year), 1e-9)
	}
}

func TestEndpointsFoundPerMetric(t *testing.T) {
	// co2 reported every year, gdp only in the middle of the window.
	obs := []schema.Observation{
		{ISO3: "BRA", Year: 2000, CO2PC: fptr(1.85)},
		{ISO3: "BRA", Year: 2005, CO2PC: fptr(1.95), GDPPC: fptr(11900)},
		{ISO3: "BRA", Year: 2010, CO2PC: fptr(2.10), GDPPC: fptr(13400)},
		{ISO3: "BRA", Year: 2023, CO2PC: fptr(2.21)},
	}
	s := schema.NewCountrySeries("BRA", "Brazil", obs)

	co2First, co2Last, ok := brushEndpoints(s, schema.MetricCO2, 2000, 2023)
	require.True(t, ok)
	assert.Equal(t, 2000, co2First.year)
	assert.Equal(t, 2023, co2Last.year)

	gdpFirst, gdpLast, ok := brushEndpoints(s, schema.MetricGDP, 2000, 2023)
	require.True(t, ok)
	assert.Equal(t, 2005, gdpFirst.year)
	assert.Equal(t, 2010, gdpLast.year)
}

func TestDeriveMissingData(t *testing.T) {
	s := usaSeries()

	_, ok := ValueAt(s, schema.MetricCO2, 2005)
	assert.False(t, ok, "no observation that year")

	_, ok = ValueAt(s, schema.MetricGDP, 2000)
	assert.False(t, ok, "metric never reported")

	_, ok = DeltaOver(s, schema.MetricGDP, 2000, 2023)
	assert.False(t, ok)

	// A window holding a single observation has a delta but no slope.
	delta, ok := DeltaOver(s, schema.MetricCO2, 2008, 2012)
	require.True(t, ok)
	assert.Zero(t, delta)
	_, ok = SlopeOver(s, schema.MetricCO2, 2008, 2012)
	assert.False(t, ok)
}

func TestDeriveFollowsMode(t *testing.T) {
	s := usaSeries()
	ds := schema.NewDataset(map[string]*schema.CountrySeries{"USA": s})
	st := schema.NewViewState(ds)

	v, ok := Derive(s, st)
	require.True(t, ok)
	assert.InDelta(t, 14.9, v, 1e-9, "value mode reads the current year")

	Apply(st, SetMode{Mode: schema.DeltaMode})
	v, ok = Derive(s, st)
	require.True(t, ok)
	assert.InDelta(t, -5.2, v, 1e-9)

	Apply(st, SetMode{Mode: schema.SlopeMode})
	v, ok = Derive(s, st)
	require.True(t, ok)
	assert.InDelta(t, -0.226, v, 0.001)
}
