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

// WriteTrend outputs the global timeline, dispatching based on the output format configured.
func WriteTrend(cfg *contract.Config, res *schema.TrendResult) error {
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON timeline")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, res, fmtFloat)
		}, "Wrote CSV timeline")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the trend view")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(w, res, fmtFloat, fmtOpt)
		}, "Wrote timeline table")
	}
}

// writeTrendTable renders one row per year with the cross-country mean.
func writeTrendTable(w io.Writer, res *schema.TrendResult, fmtFloat func(float64) string, fmtOpt func(*float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Year", "Mean", "Countries"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range res.Points {
		marker := ""
		if p.Year >= res.BrushStart && p.Year <= res.BrushEnd {
			marker = " <"
		}
		data = append(data, []string{
			strconv.Itoa(p.Year) + marker,
			fmtFloat(p.Mean),
			strconv.Itoa(p.Count),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s, brush %s: delta %s, slope %s/yr\n",
		schema.MetricLabel(res.Metric),
		schema.FormatBrush(res.BrushStart, res.BrushEnd),
		fmtOpt(res.BrushDelta), fmtOpt(res.BrushSlope))
	return err
}

// writeTrendCSV writes the timeline in CSV format.
func writeTrendCSV(w io.Writer, res *schema.TrendResult, fmtFloat func(float64) string) error {
	header := []string{"year", "mean", "countries", "metric"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range res.Points {
			rec := []string{
				strconv.Itoa(p.Year),
				fmtFloat(p.Mean),
				strconv.Itoa(p.Count),
				string(res.Metric),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
