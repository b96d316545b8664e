package sqldb_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/roster-api/internal/platform/sqldb"
	"github.com/phrazzld/roster-api/internal/store"
)

func TestMapErrorPostgres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *pgconn.PgError
		want error
	}{
		{
			name: "username unique",
			err: &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key",
				Detail: "Key (username)=(bob) already exists."},
			want: store.ErrUsernameExists,
		},
		{
			name: "email value mentioning username",
			err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key",
				Detail: "Key (email)=(username@example.com) already exists."},
			want: store.ErrEmailExists,
		},
		{
			name: "membership primary key",
			err: &pgconn.PgError{Code: "23505", ConstraintName: "users_groups_pkey",
				Detail: "Key (user_id, group_id)=(1, 2) already exists."},
			want: store.ErrDuplicate,
		},
		{
			name: "restrict on delete",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "users_groups_group_id_fkey"},
			want: store.ErrReferenced,
		},
		{
			name: "too long",
			err:  &pgconn.PgError{Code: "22001"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sqldb.MapError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			if tt.want == store.ErrEmailExists {
				assert.NotErrorIs(t, got, store.ErrUsernameExists)
			}
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sqldb.MapError(nil))
	assert.ErrorIs(t, sqldb.MapError(sql.ErrNoRows), store.ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, sqldb.MapError(other))
}
