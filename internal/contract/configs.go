package contract

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"climatlas/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultDataDir     = "data"

	// DefaultCoverageThreshold is the minimum share of countries that must
	// carry at least one finite value for a metric inside the brush window
	// before the check command fails.
	DefaultCoverageThreshold = 0.5
)

// SelectRect is a rectangle selection in compare-lab metric space.
// X bounds apply to the x metric, Y bounds to the y metric.
type SelectRect struct {
	X0, X1 float64
	Y0, Y1 float64
}

// Contains reports whether the point lies inside the rectangle (inclusive).
func (r SelectRect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Config holds the runtime configuration for all views.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir string

	Metric     schema.Metric
	Mode       schema.DisplayMode
	Year       int // 0 = latest loaded year
	BrushStart int // 0 = start of loaded range
	BrushEnd   int // 0 = end of loaded range

	Pins        []string
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	// Compare lab parameters.
	XMetric schema.Metric
	YMetric schema.Metric
	Select  *SelectRect // nil when no rectangle was given

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// CoverageThresholds is a mapping of metric -> minimum coverage share
	// used by the check command.
	CoverageThresholds map[schema.Metric]float64

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Metric         string `mapstructure:"metric"`
	Mode           string `mapstructure:"mode"`
	Year           int    `mapstructure:"year"`
	Brush          string `mapstructure:"brush"`
	Pins           string `mapstructure:"pins"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`

	// --- Fields from compareCmd.Flags() ---
	XMetric   string `mapstructure:"x"`
	YMetric   string `mapstructure:"y"`
	SelectStr string `mapstructure:"select"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Coverage thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// ThresholdsRawInput holds per-metric coverage thresholds from the YAML config file.
type ThresholdsRawInput struct {
	CO2        *float64 `mapstructure:"co2_pc"`
	Energy     *float64 `mapstructure:"energy_pc"`
	Water      *float64 `mapstructure:"water_basic_pct"`
	Sanitation *float64 `mapstructure:"sanitation_pct"`
	GDP        *float64 `mapstructure:"gdp_pc"`
	TempAnom   *float64 `mapstructure:"temp_anom"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Pins != nil {
		clone.Pins = make([]string, len(c.Pins))
		copy(clone.Pins, c.Pins)
	}
	if c.Select != nil {
		rect := *c.Select
		clone.Select = &rect
	}
	if c.CoverageThresholds != nil {
		clone.CoverageThresholds = make(map[schema.Metric]float64)
		maps.Copy(clone.CoverageThresholds, c.CoverageThresholds)
	}
	return &clone
}

// CloneWithBrush creates a copy of the Config and sets a new brush window.
func (c *Config) CloneWithBrush(start, end int) *Config {
	clone := c.Clone()
	clone.BrushStart = start
	clone.BrushEnd = end
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processBrush(cfg, input); err != nil {
		return err
	}
	if err := processPins(cfg, input); err != nil {
		return err
	}
	if err := processCompareInputs(cfg, input); err != nil {
		return err
	}
	if err := processCoverageThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	cfg.DataDir = input.DataDirStr
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Metric Validation ---
	cfg.Metric = schema.Metric(strings.ToLower(strings.TrimSpace(input.Metric)))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be one of %s", input.Metric, metricList())
	}

	// --- 3. Mode Validation ---
	cfg.Mode = schema.DisplayMode(strings.ToLower(strings.TrimSpace(input.Mode)))
	if _, ok := schema.ValidDisplayModes[cfg.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be value, delta, slope", input.Mode)
	}

	// --- 4. Year Validation ---
	// Range clamping happens after the dataset is loaded; only reject
	// obviously malformed years here.
	if input.Year != 0 && (input.Year < 1000 || input.Year > 9999) {
		return fmt.Errorf("invalid year %d", input.Year)
	}
	cfg.Year = input.Year

	// --- 5. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 6. Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processBrush parses the brush window flag, formatted "START:END".
func processBrush(cfg *Config, input *ConfigRawInput) error {
	s := strings.TrimSpace(input.Brush)
	if s == "" {
		cfg.BrushStart = 0
		cfg.BrushEnd = 0
		return nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid brush '%s'. expected START:END, e.g. 2000:2023", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("invalid brush start '%s': %w", parts[0], err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("invalid brush end '%s': %w", parts[1], err)
	}
	if start > end {
		return fmt.Errorf("brush start %d cannot be after brush end %d", start, end)
	}
	cfg.BrushStart = start
	cfg.BrushEnd = end
	return nil
}

// processPins parses the comma-separated pin list into normalized ISO3 codes.
func processPins(cfg *Config, input *ConfigRawInput) error {
	cfg.Pins = nil
	if input.Pins == "" {
		return nil
	}
	for part := range strings.SplitSeq(input.Pins, ",") {
		code := schema.NormalizeISO3(part)
		if code == "" {
			continue
		}
		if !schema.IsISO3(code) {
			return fmt.Errorf("invalid pin '%s': expected a three-letter ISO3 code", strings.TrimSpace(part))
		}
		cfg.Pins = append(cfg.Pins, code)
	}
	return nil
}

// processCompareInputs validates the compare-lab metrics and the optional
// selection rectangle, formatted "X0,X1,Y0,Y1".
func processCompareInputs(cfg *Config, input *ConfigRawInput) error {
	if input.XMetric == "" && input.YMetric == "" && input.SelectStr == "" {
		return nil
	}

	cfg.XMetric = schema.Metric(strings.ToLower(strings.TrimSpace(input.XMetric)))
	if _, ok := schema.ValidMetrics[cfg.XMetric]; !ok {
		return fmt.Errorf("invalid x metric '%s'. must be one of %s", input.XMetric, metricList())
	}
	cfg.YMetric = schema.Metric(strings.ToLower(strings.TrimSpace(input.YMetric)))
	if _, ok := schema.ValidMetrics[cfg.YMetric]; !ok {
		return fmt.Errorf("invalid y metric '%s'. must be one of %s", input.YMetric, metricList())
	}

	if input.SelectStr == "" {
		cfg.Select = nil
		return nil
	}

	parts := strings.Split(input.SelectStr, ",")
	if len(parts) != 4 {
		return fmt.Errorf("invalid --select '%s'. expected X0,X1,Y0,Y1", input.SelectStr)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("invalid --select bound '%s': %w", p, err)
		}
		vals[i] = v
	}
	rect := SelectRect{X0: vals[0], X1: vals[1], Y0: vals[2], Y1: vals[3]}
	// An inverted rectangle is an empty selection, not an error; normalize
	// bounds so Contains stays simple.
	if rect.X0 > rect.X1 {
		rect.X0, rect.X1 = rect.X1, rect.X0
	}
	if rect.Y0 > rect.Y1 {
		rect.Y0, rect.Y1 = rect.Y1, rect.Y0
	}
	cfg.Select = &rect
	return nil
}

// processCoverageThresholds merges defaults, config file values and the
// command-line override into cfg.CoverageThresholds.
func processCoverageThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[schema.Metric]float64)
	for _, m := range schema.AllMetrics {
		thresholds[m] = DefaultCoverageThreshold
	}

	// Override with config file values if provided
	fromFile := map[schema.Metric]*float64{
		schema.MetricCO2:        input.Thresholds.CO2,
		schema.MetricEnergy:     input.Thresholds.Energy,
		schema.MetricWater:      input.Thresholds.Water,
		schema.MetricSanitation: input.Thresholds.Sanitation,
		schema.MetricGDP:        input.Thresholds.GDP,
		schema.MetricTempAnom:   input.Thresholds.TempAnom,
	}
	for m, p := range fromFile {
		if p != nil {
			thresholds[m] = *p
		}
	}

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for m, v := range thresholds {
		if v < 0.0 || v > 1.0 {
			return fmt.Errorf("coverage threshold for %s must be between 0.0 and 1.0 (received %.2f)", m, v)
		}
	}

	cfg.CoverageThresholds = thresholds
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// parseThresholdsString parses a string like "co2_pc:0.6,gdp_pc:0.4"
// into a map of Metric to float64.
func parseThresholdsString(s string) (map[schema.Metric]float64, error) {
	thresholds := make(map[schema.Metric]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'metric:value'", part)
		}

		metric := schema.Metric(strings.ToLower(strings.TrimSpace(keyValue[0])))
		if _, ok := schema.ValidMetrics[metric]; !ok {
			return nil, fmt.Errorf("invalid metric '%s', must be one of %s", keyValue[0], metricList())
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for metric %s: %w", keyValue[1], metric, err)
		}
		thresholds[metric] = value
	}

	return thresholds, nil
}

// metricList renders the valid metric keys for error messages.
func metricList() string {
	keys := make([]string, len(schema.AllMetrics))
	for i, m := range schema.AllMetrics {
		keys[i] = string(m)
	}
	return strings.Join(keys, ", ")
}
