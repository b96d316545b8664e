package problem

import (
	"net/http"
)

// ProblemError carries a fully built Problem through an error return.
type ProblemError struct {
	Problem *Problem
}

// NewError wraps p.
func NewError(p *Problem) *ProblemError {
	return &ProblemError{Problem: p}
}

func (e *ProblemError) Error() string {
	if d := e.Problem.Detail(); d != "" {
		return e.Problem.Title + ": " + d
	}
	return e.Problem.Title
}

// InvalidBody reports a request body that could not be decoded.
func InvalidBody() *ProblemError {
	return NewError(New(http.StatusBadRequest, TypeInvalidRequestBodyFormat))
}

// HTTPError is a failure whose message is safe to show to clients.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates an HTTPError with status and message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// NotFound returns a 404 HTTPError.
func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// BadRequest returns a 400 HTTPError.
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Unauthorized returns a 401 HTTPError.
func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 HTTPError.
func Forbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

// MethodNotAllowed returns a 405 HTTPError.
func MethodNotAllowed(message string) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message)
}
