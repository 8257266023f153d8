//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestClimatlasWithMySQL tests the climatlas CLI with a MySQL store backend.
func TestClimatlasWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "climatlas",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/climatlas?parseTime=true", host, port.Port())
	runStoreScenario(t, "mysql", connStr)
}

// TestClimatlasWithPostgres tests the climatlas CLI with a PostgreSQL store backend.
func TestClimatlasWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runStoreScenario(t, "postgresql", connStr)
}

// runStoreScenario exercises ingest, a snapshot-recording map run and the
// store management commands against a live database backend.
func runStoreScenario(t *testing.T, backend, connStr string) {
	dataDir := writeDataDir(t)

	// Set environment variables
	_ = os.Setenv("CLIMATLAS_STORE_BACKEND", backend)
	_ = os.Setenv("CLIMATLAS_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("CLIMATLAS_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("CLIMATLAS_STORE_DB_CONNECT") }()

	// Run climatlas store clear
	_, err := runClimatlas(t, "store", "clear")
	require.NoError(t, err)

	// Run climatlas ingest
	_, err = runClimatlas(t, "ingest", dataDir)
	require.NoError(t, err)

	// Run climatlas map (records one snapshot)
	_, err = runClimatlas(t, "map", dataDir, "--limit", "5")
	require.NoError(t, err)

	// Run climatlas store status
	out, err := runClimatlas(t, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Observations: 6")
	assert.Contains(t, out, "Snapshots:    1")

	// Run climatlas store clear again
	_, err = runClimatlas(t, "store", "clear")
	require.NoError(t, err)
}
