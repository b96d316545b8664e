package problem

import (
	"encoding/json"
	"net/http"
)

// ContentType is the media type of every problem response.
const ContentType = "application/problem+json"

// Type identifies a kind of problem.
type Type string

// Problem types.
const (
	TypeAboutBlank               Type = "about:blank"
	TypeValidationError          Type = "validation_error"
	TypeInvalidRequestBodyFormat Type = "invalid_body_format"
)

var titles = map[Type]string{
	TypeValidationError:          "There was a validation error",
	TypeInvalidRequestBodyFormat: "Invalid JSON format sent",
}

// Title returns the fixed title of t, or "" when the title comes from the status.
func (t Type) Title() string {
	return titles[t]
}

// Problem is a single error response body.
type Problem struct {
	Status int
	Type   Type
	Title  string

	extras map[string]any
}

// New creates a Problem. An empty type means about:blank, whose title is
// the reason phrase of status.
func New(status int, typ Type) *Problem {
	if typ == "" {
		typ = TypeAboutBlank
	}
	title := typ.Title()
	if title == "" {
		title = http.StatusText(status)
	}
	return &Problem{
		Status: status,
		Type:   typ,
		Title:  title,
		extras: make(map[string]any),
	}
}

// Set attaches an extra member. type, title and status cannot be overridden.
func (p *Problem) Set(key string, value any) *Problem {
	if p.extras == nil {
		p.extras = make(map[string]any)
	}
	p.extras[key] = value
	return p
}

// Get returns an extra member.
func (p *Problem) Get(key string) (any, bool) {
	v, ok := p.extras[key]
	return v, ok
}

// Detail returns the detail member, if it is a string.
func (p *Problem) Detail() string {
	d, _ := p.extras["detail"].(string)
	return d
}

// MarshalJSON flattens the extras next to type, title and status.
func (p *Problem) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(p.extras)+3)
	for k, v := range p.extras {
		body[k] = v
	}
	body["type"] = string(p.Type)
	body["title"] = p.Title
	body["status"] = p.Status
	return json.Marshal(body)
}
