package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/store"
)

// UserStore implements store.UserStore on database/sql.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore over a connection pool or transaction.
// If logger is nil, a default logger will be used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	roles, err := json.Marshal(user.Roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}

	query := `
		INSERT INTO users (username, email, password, name, roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.Name,
		string(roles),
	).Scan(&user.ID)
	if err != nil {
		err = MapError(err)
		if store.IsDuplicateError(err) {
			log.Debug("user already exists",
				slog.String("username", user.Username),
				slog.String("error", err.Error()))
		} else {
			log.Error("failed to create user",
				slog.String("username", user.Username),
				slog.String("error", err.Error()))
		}
		return store.NewStoreError("user", "create", err)
	}

	if user.Groups == nil {
		user.Groups = []domain.Group{}
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getBy(ctx, "id", id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getBy(ctx, "username", username)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, "email", email)
}

// getBy loads one user by a unique column. column is never user input.
func (s *UserStore) getBy(ctx context.Context, column string, value any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, password, name, roles
		FROM users
		WHERE ` + column + ` = $1
	`

	var (
		user  domain.User
		roles []byte
	)
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.Name,
		&roles,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String(column, fmt.Sprint(value)))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String(column, fmt.Sprint(value)),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", MapError(err))
	}

	var rawRoles []string
	if err := json.Unmarshal(roles, &rawRoles); err != nil {
		return nil, fmt.Errorf("failed to decode roles of user %d: %w", user.ID, err)
	}
	user.Roles = domain.NormalizeRoles(rawRoles)

	groups, err := s.loadGroups(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Groups = groups

	return &user, nil
}

func (s *UserStore) loadGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	query := `
		SELECT g.id, g.name
		FROM "groups" g
		JOIN users_groups ug ON ug.group_id = g.id
		WHERE ug.user_id = $1
		ORDER BY g.id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("user", "load groups", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, store.NewStoreError("user", "load groups", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "load groups", err)
	}
	return groups, nil
}

// Delete implements store.UserStore.Delete
// Memberships are removed by the ON DELETE CASCADE on users_groups.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError("user", "delete", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// AddToGroup implements store.UserStore.AddToGroup
func (s *UserStore) AddToGroup(ctx context.Context, userID, groupID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users_groups (user_id, group_id) VALUES ($1, $2)`,
		userID, groupID)
	if err != nil {
		err = MapError(err)
		log.Debug("failed to add membership",
			slog.Int64("user_id", userID),
			slog.Int64("group_id", groupID),
			slog.String("error", err.Error()))
		return store.NewStoreError("membership", "create", err)
	}

	log.Info("user assigned to group",
		slog.Int64("user_id", userID),
		slog.Int64("group_id", groupID))
	return nil
}

// RemoveFromGroup implements store.UserStore.RemoveFromGroup
func (s *UserStore) RemoveFromGroup(ctx context.Context, userID, groupID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM users_groups WHERE user_id = $1 AND group_id = $2`,
		userID, groupID)
	if err != nil {
		return store.NewStoreError("membership", "delete", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrMembershipNotFound); err != nil {
		return err
	}

	log.Info("user removed from group",
		slog.Int64("user_id", userID),
		slog.Int64("group_id", groupID))
	return nil
}
