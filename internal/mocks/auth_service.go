package mocks

import (
	"context"

	"github.com/phrazzld/roster-api/internal/service"
)

// MockAuthService implements service.AuthService for testing
type MockAuthService struct {
	LoginFn func(ctx context.Context, username, password string) (string, error)

	Token string
	Err   error
}

var _ service.AuthService = (*MockAuthService)(nil)

// Login implements service.AuthService
func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return m.Token, m.Err
}
