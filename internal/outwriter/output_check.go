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

// WriteCheck outputs the data-health gate, dispatching based on the output format configured.
func WriteCheck(cfg *contract.Config, res *schema.CheckResult) error {
	fmtFloat, _ := createFormatters(2)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON check report")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckCSV(w, res, fmtFloat)
		}, "Wrote CSV check report")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the check report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckTable(w, cfg, res, fmtFloat)
		}, "Wrote check table")
	}
}

// writeCheckTable renders one row per metric with its coverage verdict.
func writeCheckTable(w io.Writer, cfg *contract.Config, res *schema.CheckResult, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Covered", "Total", "Share", "Threshold", "Status"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range res.Rows {
		status := "PASS"
		if !row.Passed {
			status = "FAIL"
			if cfg.UseColors {
				status = contract.CriticalColor.Sprint(status)
			}
		}
		data = append(data, []string{
			string(row.Metric),
			strconv.Itoa(row.Covered),
			strconv.Itoa(row.Total),
			fmtFloat(row.Share),
			fmtFloat(row.Threshold),
			status,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	verdict := "passed"
	if !res.Passed {
		verdict = "FAILED"
	}
	_, err := fmt.Fprintf(w, "Coverage check %s for brush %s\n",
		verdict, schema.FormatBrush(res.BrushStart, res.BrushEnd))
	return err
}

// writeCheckCSV writes the check report in CSV format.
func writeCheckCSV(w io.Writer, res *schema.CheckResult, fmtFloat func(float64) string) error {
	header := []string{"metric", "covered", "total", "share", "threshold", "passed"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range res.Rows {
			rec := []string{
				string(row.Metric),
				strconv.Itoa(row.Covered),
				strconv.Itoa(row.Total),
				fmtFloat(row.Share),
				fmtFloat(row.Threshold),
				strconv.FormatBool(row.Passed),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
