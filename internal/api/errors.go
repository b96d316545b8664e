package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/roster-api/internal/api/problem"
	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/redact"
	"github.com/phrazzld/roster-api/internal/service"
)

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler converts every failure that reaches the HTTP boundary into a
// problem response.
type ErrorHandler struct {
	logger *slog.Logger
	debug  bool
}

// NewErrorHandler creates an ErrorHandler. In debug mode server errors are
// written as plain text diagnostics instead of problem bodies.
func NewErrorHandler(logger *slog.Logger, debug bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
		debug:  debug,
	}
}

// Wrap adapts fn to http.HandlerFunc, sending returned errors to Handle.
func (h *ErrorHandler) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Handle(w, r, err)
		}
	}
}

// Handle logs err and writes the matching response.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	p := ToProblem(err)
	h.log(r, p.Status, err)

	if h.debug && p.Status >= http.StatusInternalServerError {
		writeDebugPage(w, p.Status, err)
		return
	}

	shared.RespondWithProblem(w, r, p)
}

func (h *ErrorHandler) log(r *http.Request, status int, err error) {
	level := slog.LevelError
	if status >= http.StatusInternalServerError {
		level = logger.LevelCritical
	}

	logger.FromContextOrDefault(r.Context(), h.logger).LogAttrs(r.Context(), level, "request failed",
		slog.String("error", redact.Error(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.Int("status_code", status),
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

// ToProblem maps err onto a problem. Only failures with a client-safe
// message get a detail member.
func ToProblem(err error) *problem.Problem {
	var (
		problemErr  *problem.ProblemError
		httpErr     *problem.HTTPError
		validation  *domain.ValidationError
		notFoundErr *service.NotFoundError
	)

	switch {
	case errors.As(err, &problemErr):
		return problemErr.Problem
	case errors.As(err, &httpErr):
		return withDetail(httpErr.Status, httpErr.Message)
	case errors.As(err, &validation):
		return problem.New(http.StatusBadRequest, problem.TypeValidationError).
			Set("errors", validation.Fields)
	case errors.As(err, &notFoundErr):
		return withDetail(http.StatusNotFound, notFoundErr.Error())
	}

	for _, m := range sentinelStatus {
		if errors.Is(err, m.err) {
			return withDetail(m.status, m.err.Error())
		}
	}

	return problem.New(http.StatusInternalServerError, problem.TypeAboutBlank)
}

// sentinelStatus lists the sentinel errors whose messages are shown to clients.
var sentinelStatus = []struct {
	err    error
	status int
}{
	{service.ErrUnknownUser, http.StatusNotFound},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrAlreadyMember, http.StatusBadRequest},
	{domain.ErrNotMember, http.StatusBadRequest},
	{domain.ErrGroupHasMembers, http.StatusBadRequest},
}

func withDetail(status int, detail string) *problem.Problem {
	return problem.New(status, problem.TypeAboutBlank).Set("detail", detail)
}

// stackTracer is implemented by errors carrying a goroutine stack, such as recovered panics.
type stackTracer interface {
	StackTrace() []byte
}

func writeDebugPage(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	fmt.Fprintf(w, "%d %s\n\n%s\n", status, http.StatusText(status), err.Error())

	var st stackTracer
	if errors.As(err, &st) {
		fmt.Fprintf(w, "\n%s", st.StackTrace())
	}
}
