package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"climatlas/schema"

	"climatlas/internal/contract"

	"github.com/fatih/color"
)

// stripe glyphs from coolest to warmest.
var stripeGlyphs = []rune("░▒▓█")

var (
	coolStripe = color.New(color.FgBlue)
	warmStripe = color.New(color.FgRed)
)

// WriteStripes outputs the global anomaly strip, dispatching based on the output format configured.
func WriteStripes(cfg *contract.Config, res *schema.StripesResult) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON stripes")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStripesCSV(w, res, fmtFloat)
		}, "Wrote CSV stripes")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the stripes view")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStripesText(w, cfg, res, fmtFloat)
		}, "Wrote stripes")
	}
}

// writeStripesText renders one line per year: a glyph scaled to the year's
// mean anomaly within the strip's own range, colored by sign.
func writeStripesText(w io.Writer, cfg *contract.Config, res *schema.StripesResult, fmtFloat func(float64) string) error {
	min, max, any := 0.0, 0.0, false
	for _, y := range res.Years {
		if y.Mean == nil {
			continue
		}
		if !any || *y.Mean < min {
			min = *y.Mean
		}
		if !any || *y.Mean > max {
			max = *y.Mean
		}
		any = true
	}
	if !any {
		_, err := fmt.Fprintln(w, "No anomaly data in the brush window")
		return err
	}

	span := max - min
	for _, y := range res.Years {
		if y.Mean == nil {
			if _, err := fmt.Fprintf(w, "%d  (no data)\n", y.Year); err != nil {
				return err
			}
			continue
		}
		level := 0
		if span > 0 {
			level = int((*y.Mean - min) / span * float64(len(stripeGlyphs)-1))
		}
		glyph := string(stripeGlyphs[level])
		bar := glyph + glyph + glyph + glyph
		if cfg.UseColors {
			if *y.Mean >= 0 {
				bar = warmStripe.Sprint(bar)
			} else {
				bar = coolStripe.Sprint(bar)
			}
		}
		if _, err := fmt.Fprintf(w, "%d  %s  %s\n", y.Year, bar, fmtFloat(*y.Mean)); err != nil {
			return err
		}
	}
	return nil
}

// writeStripesCSV writes one row per (year, month) anomaly.
func writeStripesCSV(w io.Writer, res *schema.StripesResult, fmtFloat func(float64) string) error {
	header := []string{"year", "month", "anomaly"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, y := range res.Years {
			for i, m := range y.Months {
				if m == nil {
					continue
				}
				rec := []string{
					strconv.Itoa(y.Year),
					strconv.Itoa(i + 1),
					fmtFloat(*m),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
