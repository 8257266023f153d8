package core

import (
	"fmt"
	"time"

	"climatlas/schema"

	"climatlas/internal/contract"
	"climatlas/internal/dataset"
	"climatlas/internal/outwriter"
)

// LoadEnvironment loads the primary table and replays the configured flags
// through the event dispatcher, so CLI runs obey the same clamping and
// scene/mode coupling as interactive sessions.
func LoadEnvironment(cfg *contract.Config) (*schema.Dataset, *schema.ViewState, error) {
	ds, err := dataset.LoadDataset(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return ds, buildState(ds, cfg), nil
}

// buildState derives the session state from a validated config. Order
// matters: an explicit brush after a value-mode choice switches to slope, the
// same way a manual brush does in the dashboard.
func buildState(ds *schema.Dataset, cfg *contract.Config) *schema.ViewState {
	st := schema.NewViewState(ds)
	Apply(st, SetMetric{Metric: cfg.Metric})
	Apply(st, SetMode{Mode: cfg.Mode})
	if cfg.BrushStart != 0 || cfg.BrushEnd != 0 {
		Apply(st, Brush{Start: cfg.BrushStart, End: cfg.BrushEnd})
	}
	if cfg.Year != 0 {
		Apply(st, SetYear{Year: cfg.Year})
	}
	for _, pin := range cfg.Pins {
		Apply(st, TogglePin{ISO3: pin})
	}
	return st
}

// GetMapResult computes the map view for the given config.
func GetMapResult(cfg *contract.Config) (*schema.MapResult, error) {
	ds, st, err := LoadEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	regions, err := dataset.LoadRegions(cfg.DataDir)
	if err != nil {
		contract.LogWarn("region reference unavailable", err)
		regions = nil
	}
	return BuildMap(ds, st, regions, dataset.MatchRate(ds, regions), cfg.ResultLimit), nil
}

// ExecuteMap runs the map view, prints it, and records a snapshot of the
// derived values when a store backend is configured.
func ExecuteMap(cfg *contract.Config, manager contract.StoreManager) error {
	start := time.Now()
	res, err := GetMapResult(cfg)
	if err != nil {
		return err
	}
	if err := outwriter.WriteMap(cfg, res); err != nil {
		return err
	}
	if err := recordSnapshot(manager, res); err != nil {
		contract.LogWarn("snapshot not recorded", err)
	}
	outwriter.WriteDuration(cfg, time.Since(start))
	return nil
}

// recordSnapshot persists one snapshot run with its per-country values.
func recordSnapshot(manager contract.StoreManager, res *schema.MapResult) error {
	store := manager.GetSnapshotStore()
	id, err := store.BeginSnapshot(time.Now(), res.Metric, res.Mode, res.Year, res.BrushStart, res.BrushEnd)
	if err != nil {
		return err
	}
	for _, row := range res.Rows {
		if err := store.RecordDerived(id, row.ISO3, row.Country, row.Value); err != nil {
			return err
		}
	}
	return store.EndSnapshot(id, len(res.Rows))
}

// GetTrendResult computes the global timeline for the given config.
func GetTrendResult(cfg *contract.Config) (*schema.TrendResult, error) {
	ds, st, err := LoadEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	return BuildTrend(ds, st), nil
}

// ExecuteTrend runs the global timeline view and prints it.
func ExecuteTrend(cfg *contract.Config) error {
	start := time.Now()
	res, err := GetTrendResult(cfg)
	if err != nil {
		return err
	}
	if err := outwriter.WriteTrend(cfg, res); err != nil {
		return err
	}
	outwriter.WriteDuration(cfg, time.Since(start))
	return nil
}

// GetCompareResult computes the compare lab for the given config. Entering
// the lab upgrades a value mode to slope, matching the scene coupling.
func GetCompareResult(cfg *contract.Config) (*schema.CompareResult, error) {
	if cfg.XMetric == "" || cfg.YMetric == "" {
		return nil, fmt.Errorf("compare requires both x and y metrics")
	}
	ds, st, err := LoadEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	Apply(st, SelectScene{Scene: schema.CompareScene})
	return BuildCompare(ds, st, cfg.XMetric, cfg.YMetric, cfg.Select), nil
}

// ExecuteCompare runs the compare lab and prints it.
func ExecuteCompare(cfg *contract.Config) error {
	start := time.Now()
	res, err := GetCompareResult(cfg)
	if err != nil {
		return err
	}
	if err := outwriter.WriteCompare(cfg, res); err != nil {
		return err
	}
	outwriter.WriteDuration(cfg, time.Since(start))
	return nil
}

// GetFocusResult computes the per-country focus panel for the given config.
func GetFocusResult(cfg *contract.Config, iso3 string) (*schema.FocusResult, error) {
	ds, st, err := LoadEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	Apply(st, Focus{ISO3: iso3})
	if st.Focused == "" {
		return nil, fmt.Errorf("invalid country code '%s'", iso3)
	}
	return BuildFocus(ds, st, st.Focused)
}

// ExecuteFocus runs the focus panel and prints it.
func ExecuteFocus(cfg *contract.Config, iso3 string) error {
	start := time.Now()
	res, err := GetFocusResult(cfg, iso3)
	if err != nil {
		return err
	}
	if err := outwriter.WriteFocus(cfg, res); err != nil {
		return err
	}
	outwriter.WriteDuration(cfg, time.Since(start))
	return nil
}

// ExecuteStripes runs the global anomaly stripe strip. A missing or broken
// monthly table is recoverable: the view is skipped with a warning.
func ExecuteStripes(cfg *contract.Config) error {
	start := time.Now()
	_, st, err := LoadEnvironment(cfg)
	if err != nil {
		return err
	}
	recs, err := dataset.LoadGlobalTemp(cfg.DataDir)
	if err != nil {
		contract.LogWarn("stripes view unavailable", err)
		return nil
	}
	if err := outwriter.WriteStripes(cfg, BuildStripes(recs, st)); err != nil {
		return err
	}
	outwriter.WriteDuration(cfg, time.Since(start))
	return nil
}

// GetCheckResult computes the coverage report for the given config.
func GetCheckResult(cfg *contract.Config) (*schema.CheckResult, error) {
	ds, st, err := LoadEnvironment(cfg)
	if err != nil {
		return nil, err
	}
	return BuildCheck(ds, st, cfg.CoverageThresholds), nil
}

// ExecuteCheck runs the data-health gate and prints it. The returned error is
// non-nil when any metric falls below its coverage threshold, so CI callers
// get a non-zero exit code.
func ExecuteCheck(cfg *contract.Config) error {
	start := time.Now()
	res, err := GetCheckResult(cfg)
	if err != nil {
		return err
	}
	if err := outwriter.WriteCheck(cfg, res); err != nil {
		return err
	}
	outwriter.WriteDuration(cfg, time.Since(start))
	if !res.Passed {
		return fmt.Errorf("coverage check failed for %d-%d", res.BrushStart, res.BrushEnd)
	}
	return nil
}

// ExecuteIngest loads the primary table and persists every observation into
// the configured observation store.
func ExecuteIngest(cfg *contract.Config, manager contract.StoreManager) error {
	start := time.Now()
	ds, err := dataset.LoadDataset(cfg.DataDir)
	if err != nil {
		return err
	}
	var obs []schema.Observation
	for _, iso3 := range ds.SortedISO3() {
		obs = append(obs, ds.Countries[iso3].Obs...)
	}
	if err := manager.GetObservationStore().PutObservations(obs); err != nil {
		return err
	}
	outwriter.WriteIngestSummary(cfg, len(ds.Countries), len(obs))
	outwriter.WriteDuration(cfg, time.Since(start))
	return nil
}
