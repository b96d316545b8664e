package api

import (
	"github.com/phrazzld/roster-api/internal/domain"
)

// GroupResponse is the serialized form of a group.
type GroupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserResponse is the serialized form of a user. The password hash is never included.
type UserResponse struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Roles    []string        `json:"roles"`
	Groups   []GroupResponse `json:"groups"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

func groupToResponse(g *domain.Group) GroupResponse {
	return GroupResponse{ID: g.ID, Name: g.Name}
}

func userToResponse(u *domain.User) UserResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	groups := make([]GroupResponse, 0, len(u.Groups))
	for i := range u.Groups {
		groups = append(groups, groupToResponse(&u.Groups[i]))
	}
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Roles:    roles,
		Groups:   groups,
	}
}
