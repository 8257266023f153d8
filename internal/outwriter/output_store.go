package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"climatlas/schema"

	"climatlas/internal/contract"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteStoreStatus prints snapshot store connection info and row counts.
func WriteStoreStatus(cfg *contract.Config, status schema.StoreStatus) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, statusJSON(status))
		}, "Wrote JSON store status")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Backend:      %s\n", status.Backend)
		fmt.Fprintf(w, "Connected:    %t\n", status.Connected)
		fmt.Fprintf(w, "Observations: %d\n", status.Observations)
		fmt.Fprintf(w, "Snapshots:    %d\n", status.Snapshots)
		if !status.LastIngest.IsZero() {
			fmt.Fprintf(w, "Last ingest:  %s\n", status.LastIngest.Format("2006-01-02 15:04:05"))
		}
		for name, size := range status.TableSizes {
			fmt.Fprintf(w, "Table %s: %d rows\n", name, size)
		}
		return nil
	}, "Wrote store status")
}

// statusJSON shapes StoreStatus for JSON output with stable keys.
func statusJSON(status schema.StoreStatus) map[string]any {
	out := map[string]any{
		"backend":      status.Backend,
		"connected":    status.Connected,
		"observations": status.Observations,
		"snapshots":    status.Snapshots,
		"table_sizes":  status.TableSizes,
	}
	if !status.LastIngest.IsZero() {
		out["last_ingest"] = status.LastIngest
	}
	return out
}

// WriteSnapshots prints persisted snapshot runs, newest first.
func WriteSnapshots(cfg *contract.Config, recs []schema.SnapshotRecord) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, recs)
		}, "Wrote JSON snapshots")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotsCSV(w, recs)
		}, "Wrote CSV snapshots")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotsTable(w, recs)
		}, "Wrote snapshots table")
	}
}

func writeSnapshotsTable(w io.Writer, recs []schema.SnapshotRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Created", "Metric", "Mode", "Year", "Brush", "Countries"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range recs {
		data = append(data, []string{
			strconv.FormatInt(r.SnapshotID, 10),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Metric,
			r.Mode,
			strconv.Itoa(r.Year),
			schema.FormatBrush(r.BrushStart, r.BrushEnd),
			strconv.Itoa(r.CountryCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d snapshot runs\n", len(recs))
	return err
}

func writeSnapshotsCSV(w io.Writer, recs []schema.SnapshotRecord) error {
	header := []string{"snapshot_id", "created_at", "metric", "mode", "year", "brush_start", "brush_end", "country_count"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range recs {
			rec := []string{
				strconv.FormatInt(r.SnapshotID, 10),
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Metric,
				r.Mode,
				strconv.Itoa(r.Year),
				strconv.Itoa(r.BrushStart),
				strconv.Itoa(r.BrushEnd),
				strconv.Itoa(r.CountryCount),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteMetricsDefinitions prints the indicator catalog for the metrics command.
func WriteMetricsDefinitions(cfg *contract.Config) error {
	type metricDef struct {
		Key   string `json:"key"`
		Label string `json:"label"`
		Unit  string `json:"unit"`
	}
	defs := make([]metricDef, 0, len(schema.AllMetrics))
	for _, m := range schema.AllMetrics {
		defs = append(defs, metricDef{
			Key:   string(m),
			Label: schema.MetricLabel(m),
			Unit:  schema.MetricUnit(m),
		})
	}

	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON metric definitions")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Key", "Label", "Unit"})
		var data [][]string
		for _, d := range defs {
			data = append(data, []string{d.Key, d.Label, d.Unit})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}, "Wrote metric definitions")
}
