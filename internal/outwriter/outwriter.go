// Package outwriter has output and writer logic for all views.
package outwriter

import (
	"fmt"
	"os"
	"time"

	"climatlas/schema"

	"climatlas/internal/contract"

	"golang.org/x/term"
)

// WriteDuration prints the elapsed time for a run. Suppressed for machine
// formats so piped output stays parseable.
func WriteDuration(cfg *contract.Config, duration time.Duration) {
	if cfg.Output != schema.TextOut && cfg.Output != "" {
		return
	}
	fmt.Printf("Completed in %v\n", duration)
}

// WriteIngestSummary prints a one-line summary after an ingest run.
func WriteIngestSummary(cfg *contract.Config, countries, observations int) {
	fmt.Printf("Ingested %d observations across %d countries into %s store\n",
		observations, countries, cfg.StoreBackend)
}

// GetMaxTableNameWidth calculates the maximum width for country names in
// table output based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for rank, code, value and label columns with borders
	// and padding.
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
