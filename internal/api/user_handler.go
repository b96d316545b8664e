package api

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/service"
)

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req CreateUserRequest
	if err := bindForm(r, &req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(r.Context(), service.CreateUserParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("user created via API",
		slog.Int64("user_id", user.ID))

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(user.ID, 10)))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
	return nil
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := service.ParseID("user", chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
	return nil
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := service.ParseID("user", chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		return err
	}

	shared.RespondNoContent(w)
	return nil
}

// AssignToGroup handles POST /users/{id}/assign-to-group.
func (h *UserHandler) AssignToGroup(w http.ResponseWriter, r *http.Request) error {
	return h.changeMembership(w, r, h.users.AssignToGroup)
}

// RemoveFromGroup handles POST /users/{id}/remove-from-group.
func (h *UserHandler) RemoveFromGroup(w http.ResponseWriter, r *http.Request) error {
	return h.changeMembership(w, r, h.users.RemoveFromGroup)
}

func (h *UserHandler) changeMembership(
	w http.ResponseWriter,
	r *http.Request,
	change func(ctx context.Context, userID, groupID int64) (*domain.User, error),
) error {
	userID, err := service.ParseID("user", chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	// An unknown user is reported before the body is looked at.
	if _, err := h.users.GetUser(r.Context(), userID); err != nil {
		return err
	}

	var req MembershipRequest
	if err := bindForm(r, &req); err != nil {
		return err
	}

	groupID, err := service.ParseID("group", string(req.GroupID))
	if err != nil {
		return err
	}

	user, err := change(r.Context(), userID, groupID)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
	return nil
}
