package api

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/service"
)

// GroupHandler serves the /groups endpoints.
type GroupHandler struct {
	groups service.GroupService
	logger *slog.Logger
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(groups service.GroupService, logger *slog.Logger) *GroupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupHandler{
		groups: groups,
		logger: logger.With(slog.String("component", "group_handler")),
	}
}

// Create handles POST /groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req CreateGroupRequest
	if err := bindForm(r, &req); err != nil {
		return err
	}

	group, err := h.groups.CreateGroup(r.Context(), req.Name)
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("group created via API",
		slog.Int64("group_id", group.ID))

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(group.ID, 10)))
	shared.RespondWithJSON(w, r, http.StatusCreated, groupToResponse(group))
	return nil
}

// Get handles GET /groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := service.ParseID("group", chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	group, err := h.groups.GetGroup(r.Context(), id)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupToResponse(group))
	return nil
}

// Delete handles DELETE /groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := service.ParseID("group", chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	if err := h.groups.DeleteGroup(r.Context(), id); err != nil {
		return err
	}

	shared.RespondNoContent(w)
	return nil
}
