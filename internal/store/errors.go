package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint (a taken username, a membership row that already exists).
	ErrDuplicate = errors.New("entity already exists")

	// ErrReferenced is returned when a row cannot be deleted or inserted
	// because of a foreign key.
	ErrReferenced = errors.New("entity is referenced")

	// ErrInvalidEntity is returned when the database rejects a value
	// (NOT NULL, CHECK or length constraints).
	ErrInvalidEntity = errors.New("invalid entity")

	ErrUserNotFound  = fmt.Errorf("%w: user", ErrNotFound)
	ErrGroupNotFound = fmt.Errorf("%w: group", ErrNotFound)

	// ErrMembershipNotFound means the user/group pair has no join row.
	ErrMembershipNotFound = fmt.Errorf("%w: membership", ErrNotFound)

	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError adds the entity and operation to a failure coming out of the
// database driver.
type StoreError struct {
	Entity    string // e.g. "user", "group"
	Operation string // e.g. "create", "delete"
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError wrapping err.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
