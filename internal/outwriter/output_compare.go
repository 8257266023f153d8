package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"climatlas/schema"

	"climatlas/internal/contract"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCompare outputs the compare lab, dispatching based on the output format configured.
func WriteCompare(cfg *contract.Config, res *schema.CompareResult) error {
	_, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON compare view")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCompareCSV(w, res, fmtOpt)
		}, "Wrote CSV compare view")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the compare view")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCompareTable(w, cfg, res, fmtOpt)
		}, "Wrote compare table")
	}
}

// writeCompareTable renders one row per country with both axis values.
func writeCompareTable(w io.Writer, cfg *contract.Config, res *schema.CompareResult, fmtOpt func(*float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Country", string(res.XMetric), string(res.YMetric), "Sel", "Pin"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, row := range res.Rows {
		sel, pin := "", ""
		if row.Selected {
			sel = "*"
		}
		if row.Pinned {
			pin = "*"
		}
		data = append(data, []string{
			row.ISO3,
			contract.TruncateName(row.Country, nameWidth),
			fmtOpt(row.X),
			fmtOpt(row.Y),
			sel,
			pin,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	selected := "none"
	if len(res.Selected) > 0 {
		selected = strings.Join(res.Selected, ", ")
	}
	_, err := fmt.Fprintf(w, "%s vs %s (%s), selected: %s\n",
		schema.MetricLabel(res.XMetric), schema.MetricLabel(res.YMetric),
		schema.ModeLabel(res.Mode), selected)
	return err
}

// writeCompareCSV writes the compare lab in CSV format.
func writeCompareCSV(w io.Writer, res *schema.CompareResult, fmtOpt func(*float64) string) error {
	header := []string{"iso3", "country", "x", "y", "selected", "pinned", "x_metric", "y_metric", "mode"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range res.Rows {
			x, y := "", ""
			if row.X != nil {
				x = fmtOpt(row.X)
			}
			if row.Y != nil {
				y = fmtOpt(row.Y)
			}
			rec := []string{
				row.ISO3,
				row.Country,
				x,
				y,
				strconv.FormatBool(row.Selected),
				strconv.FormatBool(row.Pinned),
				string(res.XMetric),
				string(res.YMetric),
				string(res.Mode),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
