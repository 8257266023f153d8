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

// WriteFocus outputs the per-country focus panel, dispatching based on the output format configured.
func WriteFocus(cfg *contract.Config, res *schema.FocusResult) error {
	_, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON focus panel")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFocusCSV(w, res, fmtOpt)
		}, "Wrote CSV focus panel")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the focus panel")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFocusTable(w, res, fmtOpt)
		}, "Wrote focus table")
	}
}

// writeFocusTable renders one row per metric for the focused country.
func writeFocusTable(w io.Writer, res *schema.FocusResult, fmtOpt func(*float64) string) error {
	pin := ""
	if res.Pinned {
		pin = " [pinned]"
	}
	if _, err := fmt.Fprintf(w, "%s (%s)%s, year %d, brush %s\n",
		res.Country, res.ISO3, pin, res.Year,
		schema.FormatBrush(res.BrushStart, res.BrushEnd)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Unit", "Value", "Delta", "Slope", "Trend"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, fm := range res.Metrics {
		data = append(data, []string{
			schema.MetricLabel(fm.Metric),
			schema.MetricUnit(fm.Metric),
			fmtOpt(fm.Value),
			fmtOpt(fm.Delta),
			fmtOpt(fm.Slope),
			fm.Spark,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeFocusCSV writes the focus panel in CSV format. Missing values are
// empty cells rather than "no data" so spreadsheets parse them as blanks.
func writeFocusCSV(w io.Writer, res *schema.FocusResult, fmtOpt func(*float64) string) error {
	header := []string{"iso3", "metric", "value", "delta", "slope", "year", "brush_start", "brush_end"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		opt := func(p *float64) string {
			if p == nil {
				return ""
			}
			return fmtOpt(p)
		}
		for _, fm := range res.Metrics {
			rec := []string{
				res.ISO3,
				string(fm.Metric),
				opt(fm.Value),
				opt(fm.Delta),
				opt(fm.Slope),
				strconv.Itoa(res.Year),
				strconv.Itoa(res.BrushStart),
				strconv.Itoa(res.BrushEnd),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
