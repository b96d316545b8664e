package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/roster-api/internal/api/problem"
	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

// Client-facing authentication messages.
const (
	MsgTokenNotFound = "JWT Token not found"
	MsgInvalidToken  = "Invalid JWT Token"
	MsgExpiredToken  = "Expired JWT Token"
	MsgUnknownUser   = "Unable to load user"
	MsgAccessDenied  = "Access Denied."
)

// ErrorFunc writes the response for a failed request.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// UserLoader resolves the username carried by a token.
type UserLoader interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserLoader
	onError    ErrorFunc
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users UserLoader, onError ErrorFunc) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		onError:    onError,
	}
}

// Authenticate validates the bearer token, loads its user and stores the
// user in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			m.onError(w, r, problem.Unauthorized(MsgTokenNotFound))
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			msg := MsgInvalidToken
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = MsgExpiredToken
			}
			m.onError(w, r, &problem.HTTPError{Status: http.StatusUnauthorized, Message: msg, Err: err})
			return
		}

		user, err := m.users.GetUserByUsername(r.Context(), claims.Username)
		if err != nil {
			if errors.Is(err, service.ErrUnknownUser) {
				m.onError(w, r, &problem.HTTPError{Status: http.StatusUnauthorized, Message: MsgUnknownUser, Err: err})
				return
			}
			m.onError(w, r, err)
			return
		}

		log := logger.FromContext(r.Context()).With("username", user.Username)
		ctx := logger.WithLogger(shared.WithUser(r.Context(), user), log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated users lacking role with 403. It must
// run after Authenticate.
func (m *AuthMiddleware) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := shared.UserFromContext(r.Context())
			if !ok {
				m.onError(w, r, problem.Unauthorized(MsgTokenNotFound))
				return
			}
			if !user.HasRole(role) {
				m.onError(w, r, problem.Forbidden(MsgAccessDenied))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
