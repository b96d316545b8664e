package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/roster-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts the user and sets its ID.
	// Returns ErrUsernameExists or ErrEmailExists on a uniqueness violation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID loads a user together with its groups.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername loads a user together with its groups.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail loads a user together with its groups.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes the user and its memberships.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// AddToGroup inserts a membership row.
	// Returns ErrDuplicate if the row exists, ErrReferenced if either side is missing.
	AddToGroup(ctx context.Context, userID, groupID int64) error

	// RemoveFromGroup deletes a membership row.
	// Returns ErrMembershipNotFound if there was none.
	RemoveFromGroup(ctx context.Context, userID, groupID int64) error

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
