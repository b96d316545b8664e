package shared

import (
	"encoding/json"
	"net/http"

	"github.com/phrazzld/roster-api/internal/api/problem"
	"github.com/phrazzld/roster-api/internal/platform/logger"
)

// ContentTypeJSON is the media type of success bodies.
const ContentTypeJSON = "application/json"

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, status, ContentTypeJSON, data)
}

// RespondWithProblem writes p as application/problem+json.
func RespondWithProblem(w http.ResponseWriter, r *http.Request, p *problem.Problem) {
	writeJSON(w, r, p.Status, problem.ContentType, p)
}

// RespondNoContent writes a 204 with an empty body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, contentType string, data any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			"error", err,
			"status_code", status,
			"path", r.URL.Path)
	}
}
