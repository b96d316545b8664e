package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/store"
)

// GroupService provides group-related operations.
type GroupService interface {
	// CreateGroup stores a new group.
	CreateGroup(ctx context.Context, name string) (*domain.Group, error)

	// GetGroup returns the group or a *NotFoundError.
	GetGroup(ctx context.Context, id int64) (*domain.Group, error)

	// DeleteGroup removes an empty group.
	// Returns domain.ErrGroupHasMembers while users are assigned to it.
	DeleteGroup(ctx context.Context, id int64) error
}

// GroupServiceImpl implements the GroupService interface
type GroupServiceImpl struct {
	groupStore store.GroupStore
	db         *sql.DB
	logger     *slog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groupStore store.GroupStore, db *sql.DB, logger *slog.Logger) GroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupServiceImpl{
		groupStore: groupStore,
		db:         db,
		logger:     logger.With("component", "group_service"),
	}
}

// CreateGroup implements GroupService.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	group := &domain.Group{Name: name}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.groupStore.WithTx(tx).Create(ctx, group)
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create group",
			"error", err,
			"name", name)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// GetGroup implements GroupService.
func (s *GroupServiceImpl) GetGroup(ctx context.Context, id int64) (*domain.Group, error) {
	group, err := s.groupStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return nil, notFound("group", id)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve group",
			"error", err,
			"group_id", id)
		return nil, fmt.Errorf("failed to retrieve group: %w", err)
	}
	return group, nil
}

// DeleteGroup implements GroupService.
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		groups := s.groupStore.WithTx(tx)

		if _, err := groups.GetByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrGroupNotFound) {
				return notFound("group", id)
			}
			return err
		}

		members, err := groups.CountMembers(ctx, id)
		if err != nil {
			return err
		}
		if members > 0 {
			return domain.ErrGroupHasMembers
		}

		if err := groups.Delete(ctx, id); err != nil {
			// A member added after the count is caught by the foreign key.
			if errors.Is(err, store.ErrReferenced) {
				return domain.ErrGroupHasMembers
			}
			return err
		}
		return nil
	})
	if err != nil {
		if isClientError(err) {
			log.Debug("group deletion rejected", "error", err, "group_id", id)
			return err
		}
		log.Error("failed to delete group", "error", err, "group_id", id)
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
