// Package parquet provides data structures and functions for exporting
// climatlas store data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"climatlas/schema"

	"github.com/parquet-go/parquet-go"
)

// ObservationRow is one (country, year) record in the Parquet export.
// This struct maps to the climatlas_observations database table.
type ObservationRow struct {
	// ISO3 is the three-letter country code
	ISO3 string `parquet:"iso3,snappy"`

	// Country is the display name from the source table
	Country string `parquet:"country,snappy"`

	// Year is the calendar year of the observation
	Year int32 `parquet:"year,snappy"`

	// Indicator columns, nullable where the source cell was empty
	CO2PC         *float64 `parquet:"co2_pc,optional,snappy"`
	EnergyPC      *float64 `parquet:"energy_pc,optional,snappy"`
	WaterBasicPct *float64 `parquet:"water_basic_pct,optional,snappy"`
	SanitationPct *float64 `parquet:"sanitation_pct,optional,snappy"`
	GDPPC         *float64 `parquet:"gdp_pc,optional,snappy"`
	TempAnom      *float64 `parquet:"temp_anom,optional,snappy"`
}

// SnapshotRow is one snapshot run in the Parquet export.
// This struct maps to the climatlas_snapshots database table.
type SnapshotRow struct {
	// SnapshotID is the unique identifier for this snapshot run
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// CreatedAt is when the snapshot was taken
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// Metric and Mode identify the view that was snapshotted
	Metric string `parquet:"metric,snappy"`
	Mode   string `parquet:"mode,snappy"`

	// Year and brush bounds pin down the state the values were derived under
	Year       int32 `parquet:"year,snappy"`
	BrushStart int32 `parquet:"brush_start,snappy"`
	BrushEnd   int32 `parquet:"brush_end,snappy"`

	// CountryCount is the number of derived rows recorded for the run
	CountryCount int32 `parquet:"country_count,snappy"`
}

// DerivedRow is one per-country derived value in the Parquet export.
// This struct maps to the climatlas_derived_values database table.
type DerivedRow struct {
	// SnapshotID references the parent snapshot run
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// ISO3 is the three-letter country code
	ISO3 string `parquet:"iso3,snappy"`

	// Country is the display name
	Country string `parquet:"country,snappy"`

	// Value is the derived scalar, nullable where no value was derivable
	Value *float64 `parquet:"value,optional,snappy"`
}

// FromObservations converts loaded observations into export rows.
func FromObservations(obs []schema.Observation) []ObservationRow {
	rows := make([]ObservationRow, len(obs))
	for i, o := range obs {
		rows[i] = ObservationRow{
			ISO3:          o.ISO3,
			Country:       o.Country,
			Year:          int32(o.Year),
			CO2PC:         o.CO2PC,
			EnergyPC:      o.EnergyPC,
			WaterBasicPct: o.WaterBasicPct,
			SanitationPct: o.SanitationPct,
			GDPPC:         o.GDPPC,
			TempAnom:      o.TempAnom,
		}
	}
	return rows
}

// FromSnapshots converts persisted snapshot records into export rows.
func FromSnapshots(recs []schema.SnapshotRecord) []SnapshotRow {
	rows := make([]SnapshotRow, len(recs))
	for i, r := range recs {
		rows[i] = SnapshotRow{
			SnapshotID:   r.SnapshotID,
			CreatedAt:    r.CreatedAt,
			Metric:       r.Metric,
			Mode:         r.Mode,
			Year:         int32(r.Year),
			BrushStart:   int32(r.BrushStart),
			BrushEnd:     int32(r.BrushEnd),
			CountryCount: int32(r.CountryCount),
		}
	}
	return rows
}

// FromMapRows converts an ad-hoc map view into derived-value export rows.
// The snapshot ID is zero because the rows never went through the store.
func FromMapRows(rows []schema.MapRow) []DerivedRow {
	out := make([]DerivedRow, len(rows))
	for i, r := range rows {
		out[i] = DerivedRow{ISO3: r.ISO3, Country: r.Country, Value: r.Value}
	}
	return out
}

// FromDerived converts persisted derived-value records into export rows.
func FromDerived(recs []schema.DerivedRecord) []DerivedRow {
	rows := make([]DerivedRow, len(recs))
	for i, r := range recs {
		rows[i] = DerivedRow{
			SnapshotID: r.SnapshotID,
			ISO3:       r.ISO3,
			Country:    r.Country,
			Value:      r.Value,
		}
	}
	return rows
}

// WriteObservationsParquet writes observation rows to a Parquet file.
func WriteObservationsParquet(data []ObservationRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSnapshotsParquet writes snapshot rows to a Parquet file.
func WriteSnapshotsParquet(data []SnapshotRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDerivedParquet writes derived-value rows to a Parquet file.
func WriteDerivedParquet(data []DerivedRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes any row type to a Parquet file using struct schema
// inference from the parquet tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
