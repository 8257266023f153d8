//go:build basic || database

// Package integration contains integration tests for climatlas.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration
// Database tests additionally need Docker: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

const coreFixture = `iso3,country,year,co2_pc,energy_pc,water_basic_pct,sanitation_pct,gdp_pc,temp_anom
USA,United States,2000,20.1,,99.0,99.8,36330,
USA,United States,2023,14.9,,99.1,99.8,81695,
BRA,Brazil,2000,1.85,,92.0,75.0,3749,
BRA,Brazil,2023,2.21,,93.5,83.0,10044,
NOR,Norway,2000,8.6,,100.0,98.0,38067,
NOR,Norway,2023,7.5,,100.0,98.5,87962,
`

const tempFixture = `month,year,temp_anom,month_idx
2000-01,2000,0.25,1.0
2000-02,2000,0.40,2.0
2023-01,2023,0.87,1.0
2023-02,2023,0.98,2.0
`

var (
	// sharedBinaryPath holds the path to a shared climatlas binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getClimatlasBinary returns the path to the climatlas binary, building it once if needed.
func getClimatlasBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "climatlas-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "climatlas")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/climatlas")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build climatlas: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeDataDir creates a data directory with the fixture tables.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "core_merged.csv"), []byte(coreFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "global_temp_monthly.csv"), []byte(tempFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// runClimatlas runs the built binary and returns the combined output.
func runClimatlas(t *testing.T, args ...string) (string, error) {
	t.Helper()
	binaryPath := getClimatlasBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = tempDir // Keep generated SQLite files out of the repo
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
