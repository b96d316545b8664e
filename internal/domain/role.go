package domain

import "strings"

// Role is an authorization role granted to a user.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ValidRoles lists every role a client may assign.
var ValidRoles = []Role{RoleUser, RoleAdmin}

// IsValid reports whether r is one of ValidRoles.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// NormalizeRoles upper-cases and de-duplicates roles, keeping first-seen
// order. An empty input yields {ROLE_USER}.
func NormalizeRoles(roles []string) []Role {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, raw := range roles {
		r := Role(strings.ToUpper(strings.TrimSpace(raw)))
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		out = append(out, RoleUser)
	}
	return out
}
