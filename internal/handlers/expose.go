package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/recipe-api/internal/dto"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Endpoint is a route body. It returns the entity (or slice of entities) to
// send, the success status, and an error for writeError to map.
type Endpoint func(r *http.Request) (result any, status int, err error)

// Expose turns an Endpoint into a handler whose result always passes
// through p before it is encoded, so only DTO fields reach the wire.
// A 204 status writes no body.
func Expose(ep Endpoint, p dto.Projector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, status, err := ep(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if status == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		out, err := p.Project(result)
		if err != nil {
			slog.Error("project response",
				"request_id", chimw.GetReqID(r.Context()),
				"path", r.URL.Path,
				"error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
		writeJSON(w, status, out)
	}
}
