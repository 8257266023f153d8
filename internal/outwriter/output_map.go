package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"climatlas/schema"

	"climatlas/internal/contract"
	"climatlas/internal/parquet"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMap outputs the map view, dispatching based on the output format configured.
func WriteMap(cfg *contract.Config, res *schema.MapResult) error {
	_, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON map view")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMapCSV(w, cfg, res, fmtOpt)
		}, "Wrote CSV map view")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteDerivedParquet(parquet.FromMapRows(res.Rows), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMapTable(w, cfg, res, fmtOpt)
		}, "Wrote map table")
	}
}

// writeMapTable renders the ranked country table.
func writeMapTable(w io.Writer, cfg *contract.Config, res *schema.MapResult, fmtOpt func(*float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Code", "Country", "Value", "Label", "Pin"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, row := range res.Rows {
		rank, label := "-", "-"
		if row.Value != nil {
			rank = strconv.Itoa(row.Rank)
			label = labelFor(cfg, percentileOf(row.Rank, res.Ranked))
		}
		pin := ""
		if row.Pinned {
			pin = "*"
		}
		data = append(data, []string{
			rank,
			row.ISO3,
			contract.TruncateName(row.Country, nameWidth),
			fmtOpt(row.Value),
			label,
			pin,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s (%s), year %d, brush %s\n",
		schema.MetricLabel(res.Metric), schema.ModeLabel(res.Mode),
		res.Year, schema.FormatBrush(res.BrushStart, res.BrushEnd)); err != nil {
		return err
	}
	if res.MatchRate >= 0 {
		if _, err := fmt.Fprintf(w, "Region match rate: %.0f%%\n", res.MatchRate*100); err != nil {
			return err
		}
	}
	return nil
}

// writeMapCSV writes the map view in CSV format.
func writeMapCSV(w io.Writer, cfg *contract.Config, res *schema.MapResult, fmtOpt func(*float64) string) error {
	header := []string{"rank", "iso3", "country", "value", "label", "region", "pinned", "metric", "mode", "year"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range res.Rows {
			rank, label := "", ""
			value := ""
			if row.Value != nil {
				rank = strconv.Itoa(row.Rank)
				label = contract.GetPlainLabel(percentileOf(row.Rank, res.Ranked))
				value = fmtOpt(row.Value)
			}
			rec := []string{
				rank,
				row.ISO3,
				row.Country,
				value,
				label,
				row.Region,
				strconv.FormatBool(row.Pinned),
				string(res.Metric),
				string(res.Mode),
				strconv.Itoa(res.Year),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
