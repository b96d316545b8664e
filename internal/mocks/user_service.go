package mocks

import (
	"context"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateUserFn        func(ctx context.Context, params service.CreateUserParams) (*domain.User, error)
	GetUserFn           func(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	DeleteUserFn        func(ctx context.Context, id int64) error
	AssignToGroupFn     func(ctx context.Context, userID, groupID int64) (*domain.User, error)
	RemoveFromGroupFn   func(ctx context.Context, userID, groupID int64) (*domain.User, error)

	// Default values used when functions aren't explicitly defined
	User *domain.User
	Err  error

	// LastCreateParams records the most recent CreateUser call
	LastCreateParams service.CreateUserParams
}

var _ service.UserService = (*MockUserService)(nil)

// CreateUser implements service.UserService
func (m *MockUserService) CreateUser(ctx context.Context, params service.CreateUserParams) (*domain.User, error) {
	m.LastCreateParams = params
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, params)
	}
	return m.User, m.Err
}

// GetUser implements service.UserService
func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return m.User, m.Err
}

// GetUserByUsername implements service.UserService
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetUserByUsernameFn != nil {
		return m.GetUserByUsernameFn(ctx, username)
	}
	return m.User, m.Err
}

// DeleteUser implements service.UserService
func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return m.Err
}

// AssignToGroup implements service.UserService
func (m *MockUserService) AssignToGroup(ctx context.Context, userID, groupID int64) (*domain.User, error) {
	if m.AssignToGroupFn != nil {
		return m.AssignToGroupFn(ctx, userID, groupID)
	}
	return m.User, m.Err
}

// RemoveFromGroup implements service.UserService
func (m *MockUserService) RemoveFromGroup(ctx context.Context, userID, groupID int64) (*domain.User, error) {
	if m.RemoveFromGroupFn != nil {
		return m.RemoveFromGroupFn(ctx, userID, groupID)
	}
	return m.User, m.Err
}
