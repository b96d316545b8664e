package domain

// Group is a named collection of users.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MaxGroupNameLength bounds Group.Name.
const MaxGroupNameLength = 255
