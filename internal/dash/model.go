// Package dash provides the interactive terminal dashboard.
// The dashboard is split across multiple files:
//   - model.go: Types, key bindings, Init (this file)
//   - update.go: Event routing into the core dispatcher
//   - view.go: Scene rendering
//   - styles.go: Lipgloss styles
package dash

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"climatlas/internal/contract"
	"climatlas/internal/dataset"
	"climatlas/schema"
)

// keyMap defines the dashboard key bindings.
type keyMap struct {
	SceneA key.Binding
	SceneB key.Binding
	SceneC key.Binding

	Metric    key.Binding
	ModeValue key.Binding
	ModeDelta key.Binding
	ModeSlope key.Binding

	YearPrev key.Binding
	YearNext key.Binding

	BrushStartLeft  key.Binding
	BrushStartRight key.Binding
	BrushEndLeft    key.Binding
	BrushEndRight   key.Binding
	BrushReset      key.Binding

	CursorUp   key.Binding
	CursorDown key.Binding
	Pin        key.Binding
	ClearPins  key.Binding
	Focus      key.Binding
	Back       key.Binding

	XMetric key.Binding
	YMetric key.Binding

	Help key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SceneA, k.SceneB, k.SceneC, k.Metric, k.Pin, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SceneA, k.SceneB, k.SceneC, k.Metric},
		{k.ModeValue, k.ModeDelta, k.ModeSlope},
		{k.YearPrev, k.YearNext, k.BrushStartLeft, k.BrushStartRight, k.BrushEndLeft, k.BrushEndRight, k.BrushReset},
		{k.CursorUp, k.CursorDown, k.Pin, k.ClearPins, k.Focus, k.Back},
		{k.XMetric, k.YMetric, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		SceneA: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "distribution")),
		SceneB: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "change")),
		SceneC: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "compare")),

		Metric:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "next metric")),
		ModeValue: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "value mode")),
		ModeDelta: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delta mode")),
		ModeSlope: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "slope mode")),

		YearPrev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "year -1")),
		YearNext: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "year +1")),

		BrushStartLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "brush start -1")),
		BrushStartRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "brush start +1")),
		BrushEndLeft:    key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "brush end -1")),
		BrushEndRight:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "brush end +1")),
		BrushReset:      key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "reset brush")),

		CursorUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cursor up")),
		CursorDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "cursor down")),
		Pin:        key.NewBinding(key.WithKeys("p", "enter"), key.WithHelp("p/enter", "toggle pin")),
		ClearPins:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "clear pins")),
		Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus country")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear focus")),

		XMetric: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "next x metric")),
		YMetric: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "next y metric")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the dashboard. All selection state lives in
// st and is only ever changed through the core dispatcher; the model itself
// holds presentation concerns (cursor, window size, help toggle).
type Model struct {
	cfg *contract.Config
	ds  *schema.Dataset
	st  *schema.ViewState

	regions   map[string]string
	matchRate float64

	keys keyMap
	help help.Model

	// Compare-lab axes, cycled with x/y.
	xMetric schema.Metric
	yMetric schema.Metric

	cursor int
	width  int
	height int
}

// NewModel builds the dashboard model for a loaded dataset and initial state.
func NewModel(cfg *contract.Config, ds *schema.Dataset, st *schema.ViewState) Model {
	m := Model{
		cfg:       cfg,
		ds:        ds,
		st:        st,
		matchRate: -1,
		keys:      defaultKeyMap(),
		help:      help.New(),
		xMetric:   schema.MetricGDP,
		yMetric:   schema.MetricCO2,
		width:     80,
		height:    24,
	}
	if cfg.XMetric != "" {
		m.xMetric = cfg.XMetric
	}
	if cfg.YMetric != "" {
		m.yMetric = cfg.YMetric
	}
	if regions, err := dataset.LoadRegions(cfg.DataDir); err == nil && regions != nil {
		m.regions = regions
		m.matchRate = dataset.MatchRate(ds, regions)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the dashboard and blocks until the user quits.
func Run(cfg *contract.Config, ds *schema.Dataset, st *schema.ViewState) error {
	p := tea.NewProgram(NewModel(cfg, ds, st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
