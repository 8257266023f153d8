package dash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"climatlas/core"
	"climatlas/schema"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.st.Scene {
	case schema.ChangeScene:
		b.WriteString(m.renderChange())
	case schema.CompareScene:
		b.WriteString(m.renderCompare())
	default:
		b.WriteString(m.renderDistribution())
	}

	if m.st.Focused != "" {
		b.WriteString("\n")
		b.WriteString(m.renderFocus())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderHeader draws the title bar, scene tabs and the status line.
func (m Model) renderHeader() string {
	tabs := []string{
		renderTab("1 distribution", m.st.Scene == schema.DistributionScene),
		renderTab("2 change", m.st.Scene == schema.ChangeScene),
		renderTab("3 compare", m.st.Scene == schema.CompareScene),
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("climatlas"), " ",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	status := fmt.Sprintf("%s · %s · year %d · brush %s · pins: %s",
		schema.MetricLabel(m.st.Metric),
		m.st.Mode,
		m.st.Year,
		schema.FormatBrush(m.st.BrushStart, m.st.BrushEnd),
		schema.FormatPins(m.st.PinnedList()))

	return top + "\n" + statusStyle.Render(status) + "\n"
}

func renderTab(label string, active bool) string {
	if active {
		return activeTabStyle.Render(label)
	}
	return tabStyle.Render(label)
}

// renderDistribution draws the ranked country list with value bars.
func (m Model) renderDistribution() string {
	res := core.BuildMap(m.ds, m.st, m.regions, m.matchRate, m.cfg.ResultLimit)
	if len(res.Rows) == 0 {
		return noDataStyle.Render("no countries loaded")
	}

	maxAbs := 0.0
	for _, row := range res.Rows {
		if row.Value != nil && abs(*row.Value) > maxAbs {
			maxAbs = abs(*row.Value)
		}
	}

	rows := res.Rows
	if limit := m.bodyHeight(); len(rows) > limit {
		rows = rows[:limit]
	}

	var b strings.Builder
	for i, row := range rows {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		pin := " "
		if row.Pinned {
			pin = pinStyle.Render("*")
		}
		line := fmt.Sprintf("%s%3d %s %s %-24s ", marker, row.Rank, pin, row.ISO3, truncate(row.Country, 24))
		if row.Value == nil {
			line += noDataStyle.Render("no data")
		} else {
			line += fmt.Sprintf("%*s %s", 10, m.fmtVal(*row.Value), barStyle.Render(bar(*row.Value, maxAbs, 20)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if res.MatchRate >= 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("region match rate: %.0f%%", res.MatchRate*100)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderChange draws the global timeline with the brush window marked.
func (m Model) renderChange() string {
	res := core.BuildTrend(m.ds, m.st)
	if len(res.Points) == 0 {
		return noDataStyle.Render("no data for this metric")
	}

	minMean, maxMean := res.Points[0].Mean, res.Points[0].Mean
	for _, p := range res.Points {
		if p.Mean < minMean {
			minMean = p.Mean
		}
		if p.Mean > maxMean {
			maxMean = p.Mean
		}
	}

	points := res.Points
	if limit := m.bodyHeight(); len(points) > limit {
		points = points[len(points)-limit:]
	}

	var b strings.Builder
	for _, p := range points {
		mark := " "
		if p.Year >= res.BrushStart && p.Year <= res.BrushEnd {
			mark = brushMarkStyle.Render("|")
		}
		b.WriteString(fmt.Sprintf("%d %s %*s %s\n",
			p.Year, mark, 10, m.fmtVal(p.Mean),
			barStyle.Render(scaledBar(p.Mean, minMean, maxMean, 30))))
	}

	summary := "brush summary: no data"
	if res.BrushDelta != nil && res.BrushSlope != nil {
		summary = fmt.Sprintf("brush %s: delta %s, slope %s/yr",
			schema.FormatBrush(res.BrushStart, res.BrushEnd),
			m.fmtVal(*res.BrushDelta), m.fmtVal(*res.BrushSlope))
	}
	b.WriteString(statusStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}

// renderCompare draws the two-metric country table.
func (m Model) renderCompare() string {
	res := core.BuildCompare(m.ds, m.st, m.xMetric, m.yMetric, nil)

	var b strings.Builder
	b.WriteString(statusStyle.Render(fmt.Sprintf("x: %s · y: %s (cycle with x/y)",
		schema.MetricLabel(res.XMetric), schema.MetricLabel(res.YMetric))))
	b.WriteString("\n")

	rows := res.Rows
	if limit := m.bodyHeight() - 1; limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i, row := range rows {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		pin := " "
		if row.Pinned {
			pin = pinStyle.Render("*")
		}
		sel := " "
		if row.Selected {
			sel = selectedStyle.Render("+")
		}
		b.WriteString(fmt.Sprintf("%s%s%s %s %-24s %*s %*s\n",
			marker, pin, sel, row.ISO3, truncate(row.Country, 24),
			12, m.fmtOpt(row.X), 12, m.fmtOpt(row.Y)))
	}
	return b.String()
}

// renderFocus draws the focused-country panel under the scene body.
func (m Model) renderFocus() string {
	res, err := core.BuildFocus(m.ds, m.st, m.st.Focused)
	if err != nil {
		return noDataStyle.Render(err.Error())
	}

	var b strings.Builder
	title := fmt.Sprintf("%s (%s) · year %d · brush %s", res.Country, res.ISO3,
		res.Year, schema.FormatBrush(res.BrushStart, res.BrushEnd))
	if res.Pinned {
		title += pinStyle.Render(" *")
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, fm := range res.Metrics {
		b.WriteString(fmt.Sprintf("%-22s %*s %*s %*s  %s\n",
			schema.MetricLabel(fm.Metric),
			10, m.fmtOpt(fm.Value), 10, m.fmtOpt(fm.Delta), 10, m.fmtOpt(fm.Slope),
			fm.Spark))
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// bodyHeight is the number of rows available to the scene body.
func (m Model) bodyHeight() int {
	h := m.height - 8
	if m.st.Focused != "" {
		h -= len(schema.AllMetrics) + 3
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) fmtVal(v float64) string {
	return fmt.Sprintf("%.*f", m.cfg.Precision, v)
}

func (m Model) fmtOpt(p *float64) string {
	if p == nil {
		return "-"
	}
	return m.fmtVal(*p)
}

// bar renders a magnitude bar scaled against the largest absolute value.
func bar(v, maxAbs float64, width int) string {
	if maxAbs <= 0 {
		return ""
	}
	n := int(abs(v) / maxAbs * float64(width))
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// scaledBar renders a bar scaled between the series min and max.
func scaledBar(v, lo, hi float64, width int) string {
	if hi <= lo {
		return ""
	}
	n := int((v - lo) / (hi - lo) * float64(width))
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
