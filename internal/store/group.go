package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/roster-api/internal/domain"
)

// GroupStore defines the interface for group data persistence.
type GroupStore interface {
	// Create inserts the group and sets its ID.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Group, error)

	// CountMembers returns the number of users assigned to the group.
	CountMembers(ctx context.Context, id int64) (int, error)

	// Delete removes the group.
	// Returns ErrGroupNotFound if it does not exist, ErrReferenced if it still has members.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a GroupStore bound to tx.
	WithTx(tx *sql.Tx) GroupStore
}
