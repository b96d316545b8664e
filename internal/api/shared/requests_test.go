package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name   string   `json:"name"`
	Tags   []string `json:"tags,omitempty"`
	Secret string   `json:"-"`
	Plain  int
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		wantName    string
		wantUnknown []string
	}{
		{name: "valid object", body: `{"name": "ops", "tags": ["a"]}`, wantName: "ops"},
		{name: "empty body is empty object", body: ""},
		{name: "whitespace body is empty object", body: "  \n"},
		{name: "untagged field uses Go name", body: `{"Plain": 3}`},
		{name: "unknown keys reported sorted", body: `{"name": "x", "zeta": 1, "alpha": true}`, wantName: "x", wantUnknown: []string{"alpha", "zeta"}},
		{name: "dash tag is unknown", body: `{"Secret": "s", "-": 1}`, wantUnknown: []string{"-", "Secret"}},
		{name: "trailing comma", body: `{"name": "x",}`, wantErr: true},
		{name: "array body", body: `[1, 2]`, wantErr: true},
		{name: "null body", body: `null`, wantErr: true},
		{name: "string body", body: `"name"`, wantErr: true},
		{name: "wrong field type", body: `{"name": 12}`, wantErr: true},
		{name: "oversized body", body: `{"name": "` + strings.Repeat("a", MaxBodyBytes) + `"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			var form sampleForm

			unknown, err := DecodeJSON(req, &form)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformedBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, form.Name)
			assert.Equal(t, tc.wantUnknown, unknown)
		})
	}
}
