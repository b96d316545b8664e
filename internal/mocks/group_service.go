package mocks

import (
	"context"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/service"
)

// MockGroupService implements service.GroupService for testing
type MockGroupService struct {
	CreateGroupFn func(ctx context.Context, name string) (*domain.Group, error)
	GetGroupFn    func(ctx context.Context, id int64) (*domain.Group, error)
	DeleteGroupFn func(ctx context.Context, id int64) error

	Group *domain.Group
	Err   error
}

var _ service.GroupService = (*MockGroupService)(nil)

// CreateGroup implements service.GroupService
func (m *MockGroupService) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	if m.CreateGroupFn != nil {
		return m.CreateGroupFn(ctx, name)
	}
	return m.Group, m.Err
}

// GetGroup implements service.GroupService
func (m *MockGroupService) GetGroup(ctx context.Context, id int64) (*domain.Group, error) {
	if m.GetGroupFn != nil {
		return m.GetGroupFn(ctx, id)
	}
	return m.Group, m.Err
}

// DeleteGroup implements service.GroupService
func (m *MockGroupService) DeleteGroup(ctx context.Context, id int64) error {
	if m.DeleteGroupFn != nil {
		return m.DeleteGroupFn(ctx, id)
	}
	return m.Err
}
