package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/recipe-api/internal/auth"
	"github.com/crucial707/recipe-api/internal/repo"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError is an error that already knows its status and client message.
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *HTTPError) Error() string { return e.Message }

func badRequest(msg string) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg}
}

func validationFailed(fields map[string]string) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: "validation failed", Fields: fields}
}

func notFound(msg string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: msg}
}

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	writeJSON(w, status, ErrorResponse{Error: message, Fields: fields})
}

// writeError maps err onto the error taxonomy. Anything unrecognised is
// logged and answered with an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *HTTPError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &httpErr):
		JSONValidationError(w, httpErr.Message, httpErr.Fields, httpErr.Status)
	case errors.As(err, &tooLarge):
		JSONError(w, "request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredentials):
		JSONError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, "not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicateEmail):
		JSONError(w, "email already registered", http.StatusConflict)
	default:
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// decodeJSON reads the request body into dst. Oversized bodies keep their
// *http.MaxBytesError so writeError can answer 413.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return badRequest("invalid JSON")
	}
	return nil
}
