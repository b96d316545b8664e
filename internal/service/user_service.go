package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/service/auth"
	"github.com/phrazzld/roster-api/internal/store"
)

// AlreadyUsedMessage is reported on username or email when another account holds the value.
const AlreadyUsedMessage = "This value is already used."

// CreateUserParams carries a validated user creation request.
type CreateUserParams struct {
	Username string
	Password string
	Email    string
	Name     string
	Roles    []string
}

// UserService provides user-related operations.
type UserService interface {
	// CreateUser hashes the password and stores a new user.
	// A taken username or email is reported as a *domain.ValidationError.
	CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error)

	// GetUser returns the user with its groups, or a *NotFoundError.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByUsername returns the user with its groups, or ErrUnknownUser.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// DeleteUser removes the user and its memberships.
	DeleteUser(ctx context.Context, id int64) error

	// AssignToGroup adds the user to the group and returns the updated user.
	AssignToGroup(ctx context.Context, userID, groupID int64) (*domain.User, error)

	// RemoveFromGroup removes the user from the group and returns the updated user.
	RemoveFromGroup(ctx context.Context, userID, groupID int64) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	groupStore store.GroupStore
	hasher     auth.PasswordHasher
	db         *sql.DB
	logger     *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	groupStore store.GroupStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:  userStore,
		groupStore: groupStore,
		hasher:     hasher,
		db:         db,
		logger:     logger.With("component", "user_service"),
	}
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err, "username", params.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := domain.NewUser(params.Username, params.Email, hashed, params.Name, params.Roles)

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		verr := domain.NewValidationError()
		if err := s.checkAvailable(ctx, txStore.GetByUsername, user.Username); err != nil {
			if !errors.Is(err, store.ErrDuplicate) {
				return err
			}
			verr.Add("username", AlreadyUsedMessage)
		}
		if err := s.checkAvailable(ctx, txStore.GetByEmail, user.Email); err != nil {
			if !errors.Is(err, store.ErrDuplicate) {
				return err
			}
			verr.Add("email", AlreadyUsedMessage)
		}
		if verr.HasErrors() {
			return verr
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		// A concurrent insert can still hit the unique constraints.
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			err = &domain.ValidationError{Fields: map[string][]string{"username": {AlreadyUsedMessage}}}
		case errors.Is(err, store.ErrEmailExists):
			err = &domain.ValidationError{Fields: map[string][]string{"email": {AlreadyUsedMessage}}}
		}

		if errors.Is(err, domain.ErrValidation) {
			log.Debug("user creation rejected", "error", err, "username", params.Username)
			return nil, err
		}
		log.Error("failed to create user", "error", err, "username", params.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// checkAvailable returns store.ErrDuplicate when lookup finds a row.
func (s *UserServiceImpl) checkAvailable(
	ctx context.Context,
	lookup func(context.Context, string) (*domain.User, error),
	value string,
) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return store.ErrDuplicate
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.userLookupError(ctx, id, err)
	}
	return user, nil
}

// GetUserByUsername implements UserService.
func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user by username",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// DeleteUser implements UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return s.userLookupError(ctx, id, err)
	}
	return nil
}

// AssignToGroup implements UserService.
func (s *UserServiceImpl) AssignToGroup(ctx context.Context, userID, groupID int64) (*domain.User, error) {
	return s.changeMembership(ctx, userID, groupID, func(ctx context.Context, users store.UserStore, user *domain.User, group *domain.Group) error {
		if err := domain.AssignTo(user, group); err != nil {
			return err
		}
		if err := users.AddToGroup(ctx, user.ID, group.ID); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return domain.ErrAlreadyMember
			}
			return err
		}
		return nil
	})
}

// RemoveFromGroup implements UserService.
func (s *UserServiceImpl) RemoveFromGroup(ctx context.Context, userID, groupID int64) (*domain.User, error) {
	return s.changeMembership(ctx, userID, groupID, func(ctx context.Context, users store.UserStore, user *domain.User, group *domain.Group) error {
		if err := domain.RemoveFrom(user, group); err != nil {
			return err
		}
		if err := users.RemoveFromGroup(ctx, user.ID, group.ID); err != nil {
			if errors.Is(err, store.ErrMembershipNotFound) {
				return domain.ErrNotMember
			}
			return err
		}
		return nil
	})
}

type membershipChange func(ctx context.Context, users store.UserStore, user *domain.User, group *domain.Group) error

// changeMembership loads both sides inside one transaction and applies change.
func (s *UserServiceImpl) changeMembership(
	ctx context.Context,
	userID, groupID int64,
	change membershipChange,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)

		var err error
		user, err = users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return notFound("user", userID)
			}
			return err
		}

		group, err := s.groupStore.WithTx(tx).GetByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, store.ErrGroupNotFound) {
				return notFound("group", groupID)
			}
			return err
		}

		return change(ctx, users, user, group)
	})
	if err != nil {
		if isClientError(err) {
			log.Debug("membership change rejected",
				"error", err,
				"user_id", userID,
				"group_id", groupID)
			return nil, err
		}
		log.Error("failed to change membership",
			"error", err,
			"user_id", userID,
			"group_id", groupID)
		return nil, fmt.Errorf("failed to change membership: %w", err)
	}

	return user, nil
}

func (s *UserServiceImpl) userLookupError(ctx context.Context, id int64, err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return notFound("user", id)
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("user operation failed",
		"error", err,
		"user_id", id)
	return fmt.Errorf("user %d: %w", id, err)
}

// isClientError reports failures caused by the request rather than the system.
func isClientError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyMember) ||
		errors.Is(err, domain.ErrNotMember) ||
		errors.Is(err, domain.ErrGroupHasMembers) ||
		errors.Is(err, domain.ErrValidation)
}
