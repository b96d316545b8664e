// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"sort"
	"strings"
)

// Membership and group rules. The messages are shown to API clients as-is.
var (
	// ErrAlreadyMember is returned when assigning a user to a group they already belong to.
	ErrAlreadyMember = errors.New("The user is already assigned to the group given")

	// ErrNotMember is returned when removing a user from a group they do not belong to.
	ErrNotMember = errors.New("The user is not a member of the group given")

	// ErrGroupHasMembers is returned when deleting a group that still has members.
	ErrGroupHasMembers = errors.New("this group has members. It can not be deleted !")

	// ErrValidation is matched by every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// FormErrorKey holds errors that belong to the request as a whole rather
// than a single field.
const FormErrorKey = "form"

// ValidationError collects messages keyed by field name.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends message to the list for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any message has been recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Error lists the failing fields in a stable order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Is lets errors.Is(err, ErrValidation) match any validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
