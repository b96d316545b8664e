package api

import (
	"net/http"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/service"
)

// SecurityHandler serves POST /login.
type SecurityHandler struct {
	auth service.AuthService
}

// NewSecurityHandler creates a SecurityHandler.
func NewSecurityHandler(auth service.AuthService) *SecurityHandler {
	return &SecurityHandler{auth: auth}
}

// Login exchanges a username and password for a bearer token.
func (h *SecurityHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req LoginRequest
	if err := bindForm(r, &req); err != nil {
		return err
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
	return nil
}
