package schema

import (
	"fmt"
	"sort"
	"strings"
)

// metricLabels maps metric keys to human-readable names for table headers
// and the metrics command.
var metricLabels = map[Metric]string{
	MetricCO2:        "CO2 per capita",
	MetricEnergy:     "Energy use per capita",
	MetricWater:      "Basic drinking water",
	MetricSanitation: "Improved sanitation",
	MetricGDP:        "GDP per capita",
	MetricTempAnom:   "Temperature anomaly",
}

// metricUnits maps metric keys to display units.
var metricUnits = map[Metric]string{
	MetricCO2:        "t/person",
	MetricEnergy:     "kWh/person",
	MetricWater:      "% of population",
	MetricSanitation: "% of population",
	MetricGDP:        "intl-$",
	MetricTempAnom:   "°C",
}

// MetricLabel returns the display name for a metric key.
func MetricLabel(m Metric) string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// MetricUnit returns the display unit for a metric key.
func MetricUnit(m Metric) string {
	return metricUnits[m]
}

// ModeLabel returns a short description of a display mode.
func ModeLabel(mode DisplayMode) string {
	switch mode {
	case DeltaMode:
		return "change over brush (last - first)"
	case SlopeMode:
		return "change per year over brush"
	default:
		return "value at year"
	}
}

// FormatPins renders a pin set for table output, sorted for stable display.
func FormatPins(pins []string) string {
	if len(pins) == 0 {
		return "none"
	}
	sorted := make([]string, len(pins))
	copy(sorted, pins)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

// FormatBrush renders a brush window like "2000-2023".
func FormatBrush(start, end int) string {
	return fmt.Sprintf("%d-%d", start, end)
}

// NormalizeISO3 uppercases and trims a country code argument.
func NormalizeISO3(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsISO3 reports whether s looks like a three-letter country code.
func IsISO3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
