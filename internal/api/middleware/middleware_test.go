package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/roster-api/internal/api/problem"
	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/mocks"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

// recordingErrors captures the error handed to ErrorFunc and answers with its status.
type recordingErrors struct {
	err error
}

func (re *recordingErrors) handle(w http.ResponseWriter, r *http.Request, err error) {
	re.err = err
	status := http.StatusInternalServerError
	var httpErr *problem.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Status
	}
	w.WriteHeader(status)
}

type userLoaderFunc func(ctx context.Context, username string) (*domain.User, error)

func (f userLoaderFunc) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f(ctx, username)
}

func usersByName(users ...*domain.User) UserLoader {
	return userLoaderFunc(func(ctx context.Context, username string) (*domain.User, error) {
		for _, u := range users {
			if u.Username == username {
				return u, nil
			}
		}
		return nil, service.ErrUnknownUser
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	admin := domain.NewUser("admin", "admin@example.com", "x", "", []string{"ROLE_ADMIN"})
	plain := domain.NewUser("bob", "bob@example.com", "x", "", nil)

	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "expired":
				return nil, auth.ErrExpiredToken
			case "garbage":
				return nil, auth.ErrInvalidToken
			default:
				return &auth.Claims{Username: token}, nil
			}
		},
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized, wantMsg: MsgTokenNotFound},
		{name: "wrong scheme", header: "Basic YWRtaW46eA==", wantStatus: http.StatusUnauthorized, wantMsg: MsgTokenNotFound},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMsg: MsgTokenNotFound},
		{name: "invalid token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized, wantMsg: MsgInvalidToken},
		{name: "expired token", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantMsg: MsgExpiredToken},
		{name: "deleted user", header: "Bearer ghost", wantStatus: http.StatusUnauthorized, wantMsg: MsgUnknownUser},
		{name: "not admin", header: "Bearer bob", wantStatus: http.StatusForbidden, wantMsg: MsgAccessDenied},
		{name: "admin", header: "Bearer admin", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer admin", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := &recordingErrors{}
			m := NewAuthMiddleware(jwtService, usersByName(admin, plain), errs.handle)

			var seen *domain.User
			final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = shared.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			h := m.Authenticate(m.RequireRole(domain.RoleAdmin)(final))

			req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg == "" {
				assert.Same(t, admin, seen)
				return
			}
			require.Error(t, errs.err)
			assert.Equal(t, tt.wantMsg, errs.err.Error())
			assert.Nil(t, seen)
		})
	}
}

func TestAuthMiddleware_LoaderFailure(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("database unavailable")
	errs := &recordingErrors{}
	m := NewAuthMiddleware(
		&mocks.MockJWTService{Claims: &auth.Claims{Username: "admin"}},
		userLoaderFunc(func(ctx context.Context, username string) (*domain.User, error) {
			return nil, dbErr
		}),
		errs.handle,
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	m.Authenticate(http.NotFoundHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.ErrorIs(t, errs.err, dbErr)
}

func TestTrace(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger()
	var traceID string
	h := Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Len(t, traceID, 32)
	assert.Equal(t, traceID, w.Header().Get(TraceHeader))

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, traceID, e["trace_id"])
	}
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes error", func(t *testing.T) {
		errs := &recordingErrors{}
		h := Recoverer(errs.handle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var pe *PanicError
		require.True(t, errors.As(errs.err, &pe))
		assert.Equal(t, "panic: boom", pe.Error())
		assert.NotEmpty(t, pe.StackTrace())
	})

	t.Run("panicked error unwraps", func(t *testing.T) {
		cause := errors.New("cause")
		pe := &PanicError{Value: cause}
		assert.ErrorIs(t, pe, cause)
		assert.Nil(t, (&PanicError{Value: 3}).Unwrap())
	})

	t.Run("abort handler re-panics", func(t *testing.T) {
		h := Recoverer(func(http.ResponseWriter, *http.Request, error) {
			t.Fatal("onError must not be called")
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/groups/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	for _, path := range []string{"/groups/1", "/groups/2", "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/groups/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/health", "200")))

	count, err := testutil.GatherAndCount(reg, "roster_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
