package schema

// ViewState is the shared selection state read by every view.
// There is a single instance per session; all mutation goes through the
// core dispatcher so the invariants below cannot be broken from render code.
//
// Invariants: Year and both brush bounds always lie within [MinYear, MaxYear]
// of the loaded dataset, and BrushStart <= BrushEnd.
type ViewState struct {
	Metric     Metric
	Mode       DisplayMode
	Scene      Scene
	Year       int
	BrushStart int
	BrushEnd   int

	Pinned   map[string]struct{} // persisted until explicitly toggled off
	Selected map[string]struct{} // replaced wholesale by each compare brush
	Focused  string              // hovered/focused ISO3, "" when none

	// Loaded year range, fixed at dataset load time and used for clamping.
	MinYear int
	MaxYear int
}

// NewViewState returns the initial state for a loaded dataset: value mode,
// distribution scene, current year at the end of the range, brush spanning
// the whole range, and empty pin/selection sets.
func NewViewState(ds *Dataset) *ViewState {
	return &ViewState{
		Metric:     MetricCO2,
		Mode:       ValueMode,
		Scene:      DistributionScene,
		Year:       ds.MaxYear,
		BrushStart: ds.MinYear,
		BrushEnd:   ds.MaxYear,
		Pinned:     make(map[string]struct{}),
		Selected:   make(map[string]struct{}),
		MinYear:    ds.MinYear,
		MaxYear:    ds.MaxYear,
	}
}

// IsPinned reports whether the code is in the pinned set.
func (st *ViewState) IsPinned(iso3 string) bool {
	_, ok := st.Pinned[iso3]
	return ok
}

// IsSelected reports whether the code is in the selected set.
func (st *ViewState) IsSelected(iso3 string) bool {
	_, ok := st.Selected[iso3]
	return ok
}

// PinnedList returns the pinned codes as a slice (unordered).
func (st *ViewState) PinnedList() []string {
	out := make([]string, 0, len(st.Pinned))
	for iso3 := range st.Pinned {
		out = append(out, iso3)
	}
	return out
}

// BrushSpan returns the inclusive year span of the brush window.
func (st *ViewState) BrushSpan() int {
	return st.BrushEnd - st.BrushStart
}
