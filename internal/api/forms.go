package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/roster-api/internal/api/problem"
	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
)

// Field and form messages returned to clients.
const (
	MsgNotBlank      = "This value should not be blank."
	MsgInvalidEmail  = "This value is not a valid email address."
	MsgInvalidChoice = "One or more of the given values is invalid."
	MsgInvalidValue  = "This value is not valid."
)

// ExtraFieldsMessage lists the unknown keys of a form, e.g. Extra fields sent! "a", "b".
func ExtraFieldsMessage(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = `"` + k + `"`
	}
	return "Extra fields sent! " + strings.Join(quoted, ", ")
}

// normalizer is implemented by forms that clean their input before validation.
type normalizer interface {
	normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("roles", validateRoles); err != nil {
		panic(fmt.Sprintf("register roles validation: %v", err))
	}
	return v
}

// validateRoles accepts a list whose entries name known roles in any case.
func validateRoles(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		role := domain.Role(strings.ToUpper(strings.TrimSpace(field.Index(i).String())))
		if !role.IsValid() {
			return false
		}
	}
	return true
}

// bindForm decodes the request body into form and validates it.
// It returns a *problem.ProblemError for unreadable bodies and a
// *domain.ValidationError for constraint failures.
func bindForm(r *http.Request, form any) error {
	unknown, err := shared.DecodeJSON(r, form)
	if err != nil {
		return problem.InvalidBody()
	}

	if n, ok := form.(normalizer); ok {
		n.normalize()
	}

	verr := domain.NewValidationError()
	if len(unknown) > 0 {
		verr.Add(domain.FormErrorKey, ExtraFieldsMessage(unknown))
	}

	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %T: %w", form, err)
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), fieldMessage(fe))
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgNotBlank
	case "email":
		return MsgInvalidEmail
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
	case "roles":
		return MsgInvalidChoice
	default:
		return MsgInvalidValue
	}
}

// FlexibleID accepts an identifier sent as a JSON string or number.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,max=25"`
	Password string   `json:"password" validate:"required"`
	Email    string   `json:"email"    validate:"required,email,max=60"`
	Name     string   `json:"name"     validate:"max=255"`
	Roles    []string `json:"roles"    validate:"roles"`
}

// Passwords are kept as sent.
func (f *CreateUserRequest) normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)
}

// CreateGroupRequest is the body of POST /groups.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (f *CreateGroupRequest) normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

// MembershipRequest is the body of the assign and remove endpoints.
type MembershipRequest struct {
	GroupID FlexibleID `json:"group_id" validate:"required"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (f *LoginRequest) normalize() {
	f.Username = strings.TrimSpace(f.Username)
}
