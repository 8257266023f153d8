package dash

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climatlas/internal/contract"
	"climatlas/schema"
)

func fptr(v float64) *float64 { return &v }

func testDataset() *schema.Dataset {
	countries := map[string]*schema.CountrySeries{
		"USA": schema.NewCountrySeries("USA", "United States", []schema.Observation{
			{ISO3: "USA", Country: "United States", Year: 2000, CO2PC: fptr(20.1)},
			{ISO3: "USA", Country: "United States", Year: 2023, CO2PC: fptr(14.9)},
		}),
		"BRA": schema.NewCountrySeries("BRA", "Brazil", []schema.Observation{
			{ISO3: "BRA", Country: "Brazil", Year: 2000, CO2PC: fptr(1.85)},
			{ISO3: "BRA", Country: "Brazil", Year: 2023, CO2PC: fptr(2.21)},
		}),
	}
	return schema.NewDataset(countries)
}

func testModel() Model {
	ds := testDataset()
	st := schema.NewViewState(ds)
	cfg := &contract.Config{
		Metric:      schema.MetricCO2,
		Mode:        schema.ValueMode,
		ResultLimit: contract.DefaultResultLimit,
		Precision:   1,
	}
	return NewModel(cfg, ds, st)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestSceneKeysDriveStateMachine(t *testing.T) {
	m := testModel()
	require.Equal(t, schema.DistributionScene, m.st.Scene)
	require.Equal(t, schema.ValueMode, m.st.Mode)

	m = press(t, m, keyRune('2'))
	assert.Equal(t, schema.ChangeScene, m.st.Scene)
	assert.Equal(t, schema.SlopeMode, m.st.Mode, "entering the change scene from value mode upgrades to slope")

	m = press(t, m, keyRune('d'))
	assert.Equal(t, schema.DeltaMode, m.st.Mode)
	assert.Equal(t, schema.ChangeScene, m.st.Scene)

	m = press(t, m, keyRune('1'))
	assert.Equal(t, schema.DistributionScene, m.st.Scene)
	assert.Equal(t, schema.ValueMode, m.st.Mode, "scene A always shows values")
}

func TestBrushKeysSwitchValueModeToSlope(t *testing.T) {
	m := testModel()
	require.Equal(t, schema.ValueMode, m.st.Mode)

	m = press(t, m, keyRune('{')) // brush end -1
	assert.Equal(t, 2022, m.st.BrushEnd)
	assert.Equal(t, schema.SlopeMode, m.st.Mode)
	assert.Equal(t, schema.ChangeScene, m.st.Scene)

	m = press(t, m, keyRune('B'))
	assert.Equal(t, 2000, m.st.BrushStart)
	assert.Equal(t, 2023, m.st.BrushEnd)
}

func TestYearKeysClampToLoadedRange(t *testing.T) {
	m := testModel()
	require.Equal(t, 2023, m.st.Year)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2023, m.st.Year, "year never exceeds the loaded range")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2022, m.st.Year)
}

func TestPinToggleFromCursor(t *testing.T) {
	m := testModel()

	// Cursor starts on rank 1, which is USA for co2_pc values.
	m = press(t, m, keyRune('p'))
	assert.True(t, m.st.IsPinned("USA"))

	m = press(t, m, keyRune('p'))
	assert.False(t, m.st.IsPinned("USA"), "toggling twice restores the original membership")
}

func TestMetricCycling(t *testing.T) {
	m := testModel()
	require.Equal(t, schema.MetricCO2, m.st.Metric)

	m = press(t, m, keyRune('m'))
	assert.NotEqual(t, schema.MetricCO2, m.st.Metric)

	for range len(schema.AllMetrics) - 1 {
		m = press(t, m, keyRune('m'))
	}
	assert.Equal(t, schema.MetricCO2, m.st.Metric, "cycling through all metrics wraps around")
}

func TestCompareAxisCyclingOnlyInCompareScene(t *testing.T) {
	m := testModel()
	x := m.xMetric

	m = press(t, m, keyRune('x'))
	assert.Equal(t, x, m.xMetric, "axis keys do nothing outside the compare lab")

	m = press(t, m, keyRune('3'))
	require.Equal(t, schema.CompareScene, m.st.Scene)
	m = press(t, m, keyRune('x'))
	assert.NotEqual(t, x, m.xMetric)
}

func TestFocusAndBack(t *testing.T) {
	m := testModel()

	m = press(t, m, keyRune('f'))
	assert.Equal(t, "USA", m.st.Focused)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.st.Focused)
}

func TestWindowSizeAndView(t *testing.T) {
	m := testModel()
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)

	out := m.View()
	assert.Contains(t, out, "climatlas")
	assert.Contains(t, out, "United States")
}

func TestQuitKeyReturnsQuitCmd(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
