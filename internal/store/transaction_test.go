package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/roster-api/internal/store"
	"github.com/phrazzld/roster-api/internal/testdb"
)

func countGroups(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "groups"`).Scan(&n))
	return n
}

func insertGroup(ctx context.Context, tx *sql.Tx, name string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO "groups" (name) VALUES ($1)`, name)
	return err
}

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()
		db := testdb.Open(t)

		err := store.RunInTransaction(context.Background(), db.DB, func(ctx context.Context, tx *sql.Tx) error {
			return insertGroup(ctx, tx, "committed")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countGroups(t, db.DB))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()
		db := testdb.Open(t)
		fnErr := errors.New("abort")

		err := store.RunInTransaction(context.Background(), db.DB, func(ctx context.Context, tx *sql.Tx) error {
			require.NoError(t, insertGroup(ctx, tx, "discarded"))
			return fnErr
		})
		assert.ErrorIs(t, err, fnErr)
		assert.Equal(t, 0, countGroups(t, db.DB))
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		t.Parallel()
		db := testdb.Open(t)

		assert.PanicsWithValue(t, "boom", func() {
			_ = store.RunInTransaction(context.Background(), db.DB, func(ctx context.Context, tx *sql.Tx) error {
				require.NoError(t, insertGroup(ctx, tx, "discarded"))
				panic("boom")
			})
		})
		assert.Equal(t, 0, countGroups(t, db.DB))
	})

	t.Run("begin fails on closed database", func(t *testing.T) {
		t.Parallel()
		db := testdb.Open(t)
		require.NoError(t, db.Close())

		called := false
		err := store.RunInTransaction(context.Background(), db.DB, func(ctx context.Context, tx *sql.Tx) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})
}
