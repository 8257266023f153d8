package dash

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"climatlas/core"
	"climatlas/schema"
)

// Update implements tea.Model. Every state change funnels through core.Apply;
// the switch below only translates key presses into events and moves the
// presentation cursor.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.SceneA):
			core.Apply(m.st, core.SelectScene{Scene: schema.DistributionScene})
		case key.Matches(msg, m.keys.SceneB):
			core.Apply(m.st, core.SelectScene{Scene: schema.ChangeScene})
		case key.Matches(msg, m.keys.SceneC):
			core.Apply(m.st, core.SelectScene{Scene: schema.CompareScene})

		case key.Matches(msg, m.keys.Metric):
			core.Apply(m.st, core.SetMetric{Metric: nextMetric(m.st.Metric)})

		case key.Matches(msg, m.keys.ModeValue):
			core.Apply(m.st, core.SetMode{Mode: schema.ValueMode})
		case key.Matches(msg, m.keys.ModeDelta):
			core.Apply(m.st, core.SetMode{Mode: schema.DeltaMode})
		case key.Matches(msg, m.keys.ModeSlope):
			core.Apply(m.st, core.SetMode{Mode: schema.SlopeMode})

		case key.Matches(msg, m.keys.YearPrev):
			core.Apply(m.st, core.SetYear{Year: m.st.Year - 1})
		case key.Matches(msg, m.keys.YearNext):
			core.Apply(m.st, core.SetYear{Year: m.st.Year + 1})

		case key.Matches(msg, m.keys.BrushStartLeft):
			core.Apply(m.st, core.Brush{Start: m.st.BrushStart - 1, End: m.st.BrushEnd})
		case key.Matches(msg, m.keys.BrushStartRight):
			core.Apply(m.st, core.Brush{Start: m.st.BrushStart + 1, End: m.st.BrushEnd})
		case key.Matches(msg, m.keys.BrushEndLeft):
			core.Apply(m.st, core.Brush{Start: m.st.BrushStart, End: m.st.BrushEnd - 1})
		case key.Matches(msg, m.keys.BrushEndRight):
			core.Apply(m.st, core.Brush{Start: m.st.BrushStart, End: m.st.BrushEnd + 1})
		case key.Matches(msg, m.keys.BrushReset):
			core.Apply(m.st, core.ClearBrush{})

		case key.Matches(msg, m.keys.CursorUp):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.CursorDown):
			if m.cursor < len(m.visibleCodes())-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Pin):
			if iso3 := m.cursorCode(); iso3 != "" {
				core.Apply(m.st, core.TogglePin{ISO3: iso3})
			}
		case key.Matches(msg, m.keys.ClearPins):
			core.Apply(m.st, core.ClearPins{})

		case key.Matches(msg, m.keys.Focus):
			if iso3 := m.cursorCode(); iso3 != "" {
				core.Apply(m.st, core.Focus{ISO3: iso3})
			}
		case key.Matches(msg, m.keys.Back):
			core.Apply(m.st, core.Focus{ISO3: ""})

		case key.Matches(msg, m.keys.XMetric):
			if m.st.Scene == schema.CompareScene {
				m.xMetric = nextMetric(m.xMetric)
			}
		case key.Matches(msg, m.keys.YMetric):
			if m.st.Scene == schema.CompareScene {
				m.yMetric = nextMetric(m.yMetric)
			}
		}

		m.clampCursor()
		return m, nil
	}

	return m, nil
}

// nextMetric cycles through the metric list in declaration order.
func nextMetric(cur schema.Metric) schema.Metric {
	for i, m := range schema.AllMetrics {
		if m == cur {
			return schema.AllMetrics[(i+1)%len(schema.AllMetrics)]
		}
	}
	return schema.AllMetrics[0]
}

// visibleCodes returns the ISO3 codes of the rows the current scene shows,
// in display order, so the cursor maps to the right country.
func (m Model) visibleCodes() []string {
	switch m.st.Scene {
	case schema.CompareScene:
		res := core.BuildCompare(m.ds, m.st, m.xMetric, m.yMetric, nil)
		codes := make([]string, len(res.Rows))
		for i, row := range res.Rows {
			codes[i] = row.ISO3
		}
		return codes
	default:
		res := core.BuildMap(m.ds, m.st, m.regions, m.matchRate, m.cfg.ResultLimit)
		codes := make([]string, len(res.Rows))
		for i, row := range res.Rows {
			codes[i] = row.ISO3
		}
		return codes
	}
}

// cursorCode returns the ISO3 code under the cursor, or "".
func (m Model) cursorCode() string {
	codes := m.visibleCodes()
	if m.cursor < 0 || m.cursor >= len(codes) {
		return ""
	}
	return codes[m.cursor]
}

// clampCursor keeps the cursor inside the current row list after scene or
// metric changes shrink it.
func (m *Model) clampCursor() {
	n := len(m.visibleCodes())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
