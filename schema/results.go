package schema

import "time"

// MapRow is one country entry in the map (choropleth surrogate) view.
type MapRow struct {
	Rank    int      `json:"rank"`
	ISO3    string   `json:"iso3"`
	Country string   `json:"country"`
	Value   *float64 `json:"value"` // nil renders as "no data"
	Region  string   `json:"region,omitempty"`
	Pinned  bool     `json:"pinned"`
}

// MapResult holds the full map view output plus the name-match diagnostic.
type MapResult struct {
	Metric     Metric      `json:"metric"`
	Mode       DisplayMode `json:"mode"`
	Year       int         `json:"year"`
	BrushStart int         `json:"brush_start"`
	BrushEnd   int         `json:"brush_end"`
	Rows       []MapRow    `json:"rows"`

	// Ranked is the number of countries that carried a finite derived value
	// before the result limit was applied; used for percentile labels.
	Ranked int `json:"ranked"`

	// MatchRate is the share of dataset countries found in the region
	// reference, or -1 when no reference was loaded. Diagnostic only.
	MatchRate float64 `json:"match_rate"`
}

// TrendPoint is the cross-country aggregate for one year of the timeline.
type TrendPoint struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"` // countries with a finite value that year
}

// TrendResult holds the global timeline view output.
type TrendResult struct {
	Metric     Metric       `json:"metric"`
	Points     []TrendPoint `json:"points"`
	BrushStart int          `json:"brush_start"`
	BrushEnd   int          `json:"brush_end"`
	BrushDelta *float64     `json:"brush_delta"` // of the yearly means over the brush
	BrushSlope *float64     `json:"brush_slope"`
}

// CompareRow is one country point in the two-metric compare lab.
type CompareRow struct {
	ISO3     string   `json:"iso3"`
	Country  string   `json:"country"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Selected bool     `json:"selected"`
	Pinned   bool     `json:"pinned"`
}

// CompareResult holds the compare lab output. Selected reflects the selection
// rectangle applied during this run, if any.
type CompareResult struct {
	XMetric  Metric       `json:"x_metric"`
	YMetric  Metric       `json:"y_metric"`
	Mode     DisplayMode  `json:"mode"`
	Rows     []CompareRow `json:"rows"`
	Selected []string     `json:"selected"` // ISO3 codes inside the rectangle
}

// FocusMetric is one metric line of the per-country focus panel.
type FocusMetric struct {
	Metric Metric   `json:"metric"`
	Value  *float64 `json:"value"`
	Delta  *float64 `json:"delta"`
	Slope  *float64 `json:"slope"`
	Spark  string   `json:"spark"` // ASCII sparkline over the brush window
}

// FocusResult holds the per-country focus panel output.
type FocusResult struct {
	ISO3       string        `json:"iso3"`
	Country    string        `json:"country"`
	Year       int           `json:"year"`
	BrushStart int           `json:"brush_start"`
	BrushEnd   int           `json:"brush_end"`
	Metrics    []FocusMetric `json:"metrics"`
	Pinned     bool          `json:"pinned"`
}

// StripeYear is one year of the global anomaly stripe strip.
type StripeYear struct {
	Year   int        `json:"year"`
	Months []*float64 `json:"months"` // index 0 = January; nil = missing month
	Mean   *float64   `json:"mean"`
}

// StripesResult holds the global stripe strip output.
type StripesResult struct {
	Years []StripeYear `json:"years"`
}

// CoverageRow reports, for one metric, the share of countries with at least
// one finite value inside the brush window.
type CoverageRow struct {
	Metric    Metric  `json:"metric"`
	Covered   int     `json:"covered"`
	Total     int     `json:"total"`
	Share     float64 `json:"share"`
	Threshold float64 `json:"threshold"`
	Passed    bool    `json:"passed"`
}

// CheckResult holds the data-health gate output.
type CheckResult struct {
	Passed     bool          `json:"passed"`
	Rows       []CoverageRow `json:"rows"`
	BrushStart int           `json:"brush_start"`
	BrushEnd   int           `json:"brush_end"`
}

// StoreStatus reports snapshot store connection info and row counts.
type StoreStatus struct {
	Backend      string
	Connected    bool
	Observations int64
	Snapshots    int64
	LastIngest   time.Time
	TableSizes   map[string]int64
}

// SnapshotRecord is one persisted snapshot-run row.
type SnapshotRecord struct {
	SnapshotID   int64
	CreatedAt    time.Time
	Metric       string
	Mode         string
	Year         int
	BrushStart   int
	BrushEnd     int
	CountryCount int
}

// DerivedRecord is one persisted per-country derived value for a snapshot.
type DerivedRecord struct {
	SnapshotID int64
	ISO3       string
	Country    string
	Value      *float64
}
