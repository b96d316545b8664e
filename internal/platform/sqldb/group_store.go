package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/store"
)

// GroupStore implements store.GroupStore on database/sql.
type GroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure GroupStore implements store.GroupStore interface
var _ store.GroupStore = (*GroupStore)(nil)

// NewGroupStore creates a GroupStore over a connection pool or transaction.
func NewGroupStore(db store.DBTX, logger *slog.Logger) *GroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// WithTx implements store.GroupStore.WithTx
func (s *GroupStore) WithTx(tx *sql.Tx) store.GroupStore {
	return &GroupStore{db: tx, logger: s.logger}
}

// Create implements store.GroupStore.Create
func (s *GroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO "groups" (name) VALUES ($1) RETURNING id`,
		group.Name,
	).Scan(&group.ID)
	if err != nil {
		log.Error("failed to create group",
			slog.String("name", group.Name),
			slog.String("error", err.Error()))
		return store.NewStoreError("group", "create", MapError(err))
	}

	log.Info("group created", slog.Int64("group_id", group.ID))
	return nil
}

// GetByID implements store.GroupStore.GetByID
func (s *GroupStore) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var group domain.Group
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM "groups" WHERE id = $1`, id,
	).Scan(&group.ID, &group.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("group not found", slog.Int64("group_id", id))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group",
			slog.Int64("group_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("group", "get", MapError(err))
	}
	return &group, nil
}

// CountMembers implements store.GroupStore.CountMembers
func (s *GroupStore) CountMembers(ctx context.Context, id int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users_groups WHERE group_id = $1`, id,
	).Scan(&n)
	if err != nil {
		return 0, store.NewStoreError("group", "count members", MapError(err))
	}
	return n, nil
}

// Delete implements store.GroupStore.Delete
// The RESTRICT foreign key turns a delete of a non-empty group into ErrReferenced.
func (s *GroupStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM "groups" WHERE id = $1`, id)
	if err != nil {
		err = MapError(err)
		log.Warn("failed to delete group",
			slog.Int64("group_id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError("group", "delete", err)
	}
	if err := checkRowsAffected(result, store.ErrGroupNotFound); err != nil {
		return err
	}

	log.Info("group deleted", slog.Int64("group_id", id))
	return nil
}
