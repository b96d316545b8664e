package testdb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/platform/sqldb"
)

// TestTimeout bounds database setup in tests.
const TestTimeout = 30 * time.Second

// Open returns a migrated SQLite database that is closed when the test ends.
func Open(t *testing.T) *sqldb.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.db")
	return open(t, config.DatabaseConfig{Driver: "sqlite", URL: path})
}

func open(t *testing.T, cfg config.DatabaseConfig) *sqldb.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg, nil)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	migrator, err := sqldb.NewMigrator(db, nil)
	require.NoError(t, err, "failed to create migrator")
	require.NoError(t, migrator.Up(ctx), "failed to migrate test database")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
