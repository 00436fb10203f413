package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/recipe-api/internal/repo"
)

// AuditHandler serves audit log endpoints.
type AuditHandler struct {
	Repo repo.AuditStore
}

// List returns recent audit entries. Query: limit (default 50, max 200), offset (default 0).
func (h *AuditHandler) List(r *http.Request) (any, int, error) {
	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	entries, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return entries, http.StatusOK, nil
}
