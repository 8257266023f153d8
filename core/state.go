package core

import "climatlas/schema"

// Event is a single interaction applied to the view state. Every mutation,
// whether from a CLI flag, the dashboard, or an MCP tool call, goes through
// Apply so clamping and the scene/mode coupling cannot be bypassed.
type Event interface {
	isEvent()
}

// SelectScene enters one of the guided scenes.
type SelectScene struct {
	Scene schema.Scene
}

// SetMetric switches the active indicator.
type SetMetric struct {
	Metric schema.Metric
}

// SetMode picks a display mode explicitly, outside the scene buttons.
type SetMode struct {
	Mode schema.DisplayMode
}

// SetYear moves the current-year slider.
type SetYear struct {
	Year int
}

// Brush sets the timeline window. Bounds may arrive inverted or out of range.
type Brush struct {
	Start, End int
}

// ClearBrush resets the window to the full loaded range.
type ClearBrush struct{}

// TogglePin flips one country's membership in the pinned set.
type TogglePin struct {
	ISO3 string
}

// ClearPins empties the pinned set.
type ClearPins struct{}

// ReplaceSelection replaces the compare selection wholesale. An empty slice
// is a valid selection of zero countries.
type ReplaceSelection struct {
	ISO3 []string
}

// Focus sets the focused country, or clears it with an empty code.
type Focus struct {
	ISO3 string
}

func (SelectScene) isEvent()      {}
func (SetMetric) isEvent()        {}
func (SetMode) isEvent()          {}
func (SetYear) isEvent()          {}
func (Brush) isEvent()            {}
func (ClearBrush) isEvent()       {}
func (TogglePin) isEvent()        {}
func (ClearPins) isEvent()        {}
func (ReplaceSelection) isEvent() {}
func (Focus) isEvent()            {}

// Apply mutates the state for one event. Out-of-range years and brushes are
// clamped to the loaded range rather than rejected; unknown metric or mode
// values are ignored. This is the only function that writes ViewState.
func Apply(st *schema.ViewState, ev Event) {
	switch e := ev.(type) {
	case SelectScene:
		if _, ok := schema.ValidScenes[e.Scene]; !ok {
			return
		}
		st.Scene, st.Mode = resolveScene(e.Scene, st.Mode)

	case SetMetric:
		if _, ok := schema.ValidMetrics[e.Metric]; !ok {
			return
		}
		st.Metric = e.Metric

	case SetMode:
		if _, ok := schema.ValidDisplayModes[e.Mode]; !ok {
			return
		}
		st.Scene, st.Mode = resolveMode(e.Mode)

	case SetYear:
		st.Year = clampYear(st, e.Year)

	case Brush:
		start, end := clampYear(st, e.Start), clampYear(st, e.End)
		if start > end {
			start, end = end, start
		}
		st.BrushStart, st.BrushEnd = start, end
		// A manual brush is a question about change, so a plain value view
		// switches to the change scene showing slopes.
		if st.Mode == schema.ValueMode {
			st.Mode = schema.SlopeMode
			st.Scene = schema.ChangeScene
		}

	case ClearBrush:
		st.BrushStart, st.BrushEnd = st.MinYear, st.MaxYear

	case TogglePin:
		iso3 := schema.NormalizeISO3(e.ISO3)
		if !schema.IsISO3(iso3) {
			return
		}
		if st.IsPinned(iso3) {
			delete(st.Pinned, iso3)
		} else {
			st.Pinned[iso3] = struct{}{}
		}

	case ClearPins:
		st.Pinned = make(map[string]struct{})

	case ReplaceSelection:
		next := make(map[string]struct{}, len(e.ISO3))
		for _, raw := range e.ISO3 {
			iso3 := schema.NormalizeISO3(raw)
			if schema.IsISO3(iso3) {
				next[iso3] = struct{}{}
			}
		}
		st.Selected = next

	case Focus:
		iso3 := schema.NormalizeISO3(e.ISO3)
		if e.ISO3 != "" && !schema.IsISO3(iso3) {
			return
		}
		st.Focused = iso3
	}
}

func clampYear(st *schema.ViewState, year int) int {
	if year < st.MinYear {
		return st.MinYear
	}
	if year > st.MaxYear {
		return st.MaxYear
	}
	return year
}
