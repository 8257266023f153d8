package schema

// Custom string types for type safety.
type (
	// Metric identifies one indicator column in the merged dataset.
	Metric string

	// DisplayMode represents how a country's scalar value is derived.
	DisplayMode string

	// Scene represents one of the guided narrative views.
	Scene string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the snapshot store.
	DatabaseBackend string
)

// All indicator metrics in the merged dataset. The constant values match the
// column headers produced by the data-prep pipeline.
const (
	MetricCO2        Metric = "co2_pc"          // CO2 emissions per capita (t)
	MetricEnergy     Metric = "energy_pc"       // Primary energy use per capita (kWh)
	MetricWater      Metric = "water_basic_pct" // Share with basic drinking water (%)
	MetricSanitation Metric = "sanitation_pct"  // Share with improved sanitation (%)
	MetricGDP        Metric = "gdp_pc"          // GDP per capita (intl-$)
	MetricTempAnom   Metric = "temp_anom"       // Annual mean temperature anomaly (°C)
)

// All display modes supported.
const (
	ValueMode DisplayMode = "value" // default: value at the current year
	DeltaMode DisplayMode = "delta" // last minus first over the brush window
	SlopeMode DisplayMode = "slope" // delta divided by the year span
)

// All scenes supported.
const (
	DistributionScene Scene = "distribution" // scene A: values at a year
	ChangeScene       Scene = "change"       // scene B: change over the brush
	CompareScene      Scene = "compare"      // scene C: two-metric compare lab
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All snapshot store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllMetrics returns every metric in dataset column order.
var AllMetrics = []Metric{
	MetricCO2, MetricEnergy, MetricWater, MetricSanitation, MetricGDP, MetricTempAnom,
}

// ValidMetrics lists all valid metric keys.
var ValidMetrics = map[Metric]struct{}{
	MetricCO2:        {},
	MetricEnergy:     {},
	MetricWater:      {},
	MetricSanitation: {},
	MetricGDP:        {},
	MetricTempAnom:   {},
}

// ValidDisplayModes lists all valid display modes.
var ValidDisplayModes = map[DisplayMode]struct{}{
	ValueMode: {},
	DeltaMode: {},
	SlopeMode: {},
}

// ValidScenes lists all valid scenes.
var ValidScenes = map[Scene]struct{}{
	DistributionScene: {},
	ChangeScene:       {},
	CompareScene:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid snapshot store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
