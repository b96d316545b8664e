//go:build integration

package testdb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/platform/sqldb"
)

// OpenPostgres returns a migrated PostgreSQL database. DATABASE_URL wins
// when set; otherwise a postgres container is started for the test.
func OpenPostgres(t *testing.T) *sqldb.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = startPostgres(t)
	}
	return open(t, config.DatabaseConfig{Driver: "postgres", URL: url})
}

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "roster",
			"POSTGRES_PASSWORD": "roster",
			"POSTGRES_DB":       "roster",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("warning: failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err, "could not get container host")
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err, "could not get mapped port")

	return fmt.Sprintf("postgres://roster:roster@%s:%s/roster?sslmode=disable", host, port.Port())
}
