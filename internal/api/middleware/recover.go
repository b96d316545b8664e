package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
)

// PanicError is a recovered handler panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// StackTrace returns the stack captured at the point of recovery.
func (e *PanicError) StackTrace() []byte {
	return e.Stack
}

// Unwrap exposes a panicked error value.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recoverer turns handler panics into errors passed to onError.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recoverer(onError ErrorFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				onError(w, r, &PanicError{Value: rec, Stack: debug.Stack()})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
