package domain

// User is an account that can log in and belong to groups.
type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	HashedPassword string  `json:"-"` // never serialized
	Name           string  `json:"name"`
	Roles          []Role  `json:"roles"`
	Groups         []Group `json:"groups"`
}

// Max column lengths, shared by the forms and the schema.
const (
	MaxUsernameLength = 25
	MaxEmailLength    = 60
	MaxNameLength     = 255
)

// NewUser builds a user with normalized roles and no memberships.
// The caller hashes the password before passing it in.
func NewUser(username, email, hashedPassword, name string, roles []string) *User {
	return &User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		Roles:          NormalizeRoles(roles),
		Groups:         []Group{},
	}
}

// HasRole reports whether the user was granted role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsMemberOf reports whether g is among the user's loaded groups.
func IsMemberOf(u *User, g *Group) bool {
	for _, member := range u.Groups {
		if member.ID == g.ID {
			return true
		}
	}
	return false
}

// AssignTo adds g to the user's groups.
func AssignTo(u *User, g *Group) error {
	if IsMemberOf(u, g) {
		return ErrAlreadyMember
	}
	u.Groups = append(u.Groups, *g)
	return nil
}

// RemoveFrom drops g from the user's groups.
func RemoveFrom(u *User, g *Group) error {
	for i, member := range u.Groups {
		if member.ID == g.ID {
			u.Groups = append(u.Groups[:i], u.Groups[i+1:]...)
			return nil
		}
	}
	return ErrNotMember
}
