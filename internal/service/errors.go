package service

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors with client-safe messages.
var (
	// ErrInvalidCredentials means the password did not match. API layer maps it to 401.
	ErrInvalidCredentials = errors.New("Invalid credentials.")

	// ErrUnknownUser means no account matches the submitted username. API layer maps it to 404.
	ErrUnknownUser = errors.New("Not Found")

	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("not found")
)

// NotFoundError reports a missing entity by the ID the client asked for.
type NotFoundError struct {
	Entity string // "user" or "group"
	ID     string
}

// Error renders the message shown to clients, e.g. No group found by ID "fake".
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No %s found by ID \"%s\"", e.Entity, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: strconv.FormatInt(id, 10)}
}

// ParseID converts a path or body identifier. Anything that is not a
// positive integer cannot name a row, so it is reported as not found.
func ParseID(entity, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &NotFoundError{Entity: entity, ID: raw}
	}
	return id, nil
}
