package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/recipe-api/internal/auth"
	"github.com/crucial707/recipe-api/internal/metrics"
	"github.com/crucial707/recipe-api/internal/models"
	"github.com/crucial707/recipe-api/internal/validate"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type key string

const userKey key = "user"

// unauthorizedMessage is the only body a guard sends on rejection.
const unauthorizedMessage = "unauthorized"

// TokenResolver maps a bearer token to its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// CredentialValidator checks an email and password pair.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, email, password string) (*models.User, error)
}

// WithUser returns ctx carrying user as the authenticated principal.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the principal attached by Bearer or Credentials.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// GetUserID returns the id of the current principal.
func GetUserID(ctx context.Context) (string, bool) {
	u, ok := CurrentUser(ctx)
	if !ok {
		return "", false
	}
	return u.ID, true
}

// Bearer rejects requests without a valid "Authorization: Bearer <token>"
// header and attaches the resolved user otherwise.
func Bearer(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				reject(w, "bearer")
				return
			}

			user, err := resolver.ResolveToken(r.Context(), strings.TrimSpace(token))
			if errors.Is(err, auth.ErrUnauthorized) {
				reject(w, "bearer")
				return
			}
			if err != nil {
				slog.Error("resolve token", "request_id", chimw.GetReqID(r.Context()), "error", err)
				writeJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// LoginInput is the body consumed by the Credentials guard.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Credentials authenticates the email and password in the request body and
// attaches the matching user. Malformed bodies get 400; every credential
// failure gets the same 401.
func Credentials(validator CredentialValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var input LoginInput
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				writeJSONError(w, "invalid JSON", http.StatusBadRequest)
				return
			}
			if fields := validate.Struct(input); fields != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fields})
				return
			}

			user, err := validator.ValidateCredentials(r.Context(), input.Email, input.Password)
			if errors.Is(err, auth.ErrInvalidCredentials) {
				reject(w, "credentials")
				return
			}
			if err != nil {
				slog.Error("validate credentials", "request_id", chimw.GetReqID(r.Context()), "error", err)
				writeJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func reject(w http.ResponseWriter, guard string) {
	metrics.IncAuthFailures(guard)
	writeJSONError(w, unauthorizedMessage, http.StatusUnauthorized)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
