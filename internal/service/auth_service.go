package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/service/auth"
	"github.com/phrazzld/roster-api/internal/store"
)

// AuthService exchanges credentials for a bearer token.
type AuthService interface {
	// Login returns a signed token for the user.
	// Returns ErrUnknownUser or ErrInvalidCredentials on failure.
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	logger *slog.Logger,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger.With("component", "auth_service"),
	}
}

// Login implements AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown user", "username", username)
			return "", ErrUnknownUser
		}
		log.Error("failed to load user for login", "error", err, "username", username)
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", "username", username)
			return "", ErrInvalidCredentials
		}
		log.Error("failed to verify password", "error", err, "username", username)
		return "", fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := s.jwtService.GenerateToken(ctx, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return token, nil
}
