package handlers

import (
	"context"
	"net/http"

	"github.com/crucial707/recipe-api/internal/auth"
	"github.com/crucial707/recipe-api/internal/dto"
	"github.com/crucial707/recipe-api/internal/middleware"
	"github.com/crucial707/recipe-api/internal/models"
	"github.com/crucial707/recipe-api/internal/validate"
)

// AuthService is the part of auth.Service the handlers call directly.
type AuthService interface {
	IssueToken(user *models.User) (string, error)
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
}

var _ AuthService = (*auth.Service)(nil)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Auth AuthService
}

// ==========================
// Login (runs behind middleware.Credentials)
// ==========================
func (h *AuthHandler) Login(r *http.Request) (any, int, error) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return nil, 0, auth.ErrInvalidCredentials
	}
	token, err := h.Auth.IssueToken(user)
	if err != nil {
		return nil, 0, err
	}
	return dto.TokenUser(*user, token), http.StatusOK, nil
}

// ==========================
// Profile (runs behind middleware.Bearer)
// ==========================
func (h *AuthHandler) Profile(r *http.Request) (any, int, error) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		return nil, 0, auth.ErrUnauthorized
	}
	return user, http.StatusOK, nil
}

type registerInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// ==========================
// Register (bcrypt hash; duplicate email is 409)
// ==========================
func (h *AuthHandler) Register(r *http.Request) (any, int, error) {
	var input registerInput
	if err := decodeJSON(r, &input); err != nil {
		return nil, 0, err
	}
	if fields := validate.Struct(input); fields != nil {
		return nil, 0, validationFailed(fields)
	}

	user, err := h.Auth.Register(r.Context(), input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil {
		return nil, 0, err
	}
	return user, http.StatusCreated, nil
}
