package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, p *Problem) map[string]any {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		typ       Type
		wantType  string
		wantTitle string
	}{
		{"empty type is about:blank", http.StatusNotFound, "", "about:blank", "Not Found"},
		{"about:blank uses reason phrase", http.StatusUnauthorized, TypeAboutBlank, "about:blank", "Unauthorized"},
		{"validation title", http.StatusBadRequest, TypeValidationError, "validation_error", "There was a validation error"},
		{"body format title", http.StatusBadRequest, TypeInvalidRequestBodyFormat, "invalid_body_format", "Invalid JSON format sent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := decode(t, New(tt.status, tt.typ))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, tt.wantTitle, body["title"])
			assert.EqualValues(t, tt.status, body["status"])
			assert.Len(t, body, 3)
		})
	}
}

func TestProblem_Extras(t *testing.T) {
	t.Parallel()

	p := New(http.StatusBadRequest, TypeValidationError).
		Set("errors", map[string][]string{"name": {"This value should not be blank."}}).
		Set("status", 999).
		Set("title", "overridden")

	body := decode(t, p)
	assert.EqualValues(t, http.StatusBadRequest, body["status"])
	assert.Equal(t, "There was a validation error", body["title"])
	assert.Equal(t,
		map[string]any{"name": []any{"This value should not be blank."}},
		body["errors"])

	_, ok := p.Get("errors")
	assert.True(t, ok)
	_, ok = p.Get("detail")
	assert.False(t, ok)
	assert.Empty(t, p.Detail())
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("problem error message", func(t *testing.T) {
		err := NewError(New(http.StatusNotFound, "").Set("detail", "gone"))
		assert.Equal(t, "Not Found: gone", err.Error())
		assert.Equal(t, "Invalid JSON format sent", InvalidBody().Error())
	})

	t.Run("http error helpers", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, NotFound("x").Status)
		assert.Equal(t, http.StatusBadRequest, BadRequest("x").Status)
		assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Status)
		assert.Equal(t, http.StatusForbidden, Forbidden("x").Status)
		assert.Equal(t, http.StatusMethodNotAllowed, MethodNotAllowed("x").Status)
		assert.Equal(t, "Access Denied.", Forbidden("Access Denied.").Error())
	})

	t.Run("http error unwraps", func(t *testing.T) {
		cause := errors.New("cause")
		err := &HTTPError{Status: http.StatusUnauthorized, Message: "Invalid JWT Token", Err: cause}
		assert.ErrorIs(t, err, cause)
	})
}
