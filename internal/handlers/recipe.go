package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/recipe-api/internal/metrics"
	"github.com/crucial707/recipe-api/internal/middleware"
	"github.com/crucial707/recipe-api/internal/models"
	"github.com/crucial707/recipe-api/internal/repo"
	"github.com/crucial707/recipe-api/internal/validate"
	"github.com/go-chi/chi/v5"
)

const msgRecipeNotFound = "recipe not found"

// RecipeHandler serves the recipe CRUD routes. Audit is optional.
type RecipeHandler struct {
	Store repo.RecipeStore
	Audit repo.AuditStore
}

type createRecipeInput struct {
	Title          string   `json:"title" validate:"required,max=200"`
	RecipeImageURL string   `json:"recipeImageUrl" validate:"omitempty,url,max=2048"`
	Ingredients    []string `json:"ingredients" validate:"omitempty,dive,required"`
	Instructions   string   `json:"instructions" validate:"max=20000"`
	PrepTime       int      `json:"prepTime" validate:"min=0,max=2147483647"`
	CookTime       int      `json:"cookTime" validate:"min=0,max=2147483647"`
	TotalTime      int      `json:"totalTime" validate:"min=0,max=2147483647"`
}

type updateRecipeInput struct {
	Title          *string   `json:"title" validate:"omitnil,min=1,max=200"`
	RecipeImageURL *string   `json:"recipeImageUrl" validate:"omitempty,url,max=2048"`
	Ingredients    *[]string `json:"ingredients" validate:"omitnil,dive,required"`
	Instructions   *string   `json:"instructions" validate:"omitnil,max=20000"`
	PrepTime       *int      `json:"prepTime" validate:"omitnil,min=0,max=2147483647"`
	CookTime       *int      `json:"cookTime" validate:"omitnil,min=0,max=2147483647"`
	TotalTime      *int      `json:"totalTime" validate:"omitnil,min=0,max=2147483647"`
}

//
// ==========================
// Create Recipe
// ==========================
//

func (h *RecipeHandler) Create(r *http.Request) (any, int, error) {
	var input createRecipeInput
	if err := decodeJSON(r, &input); err != nil {
		return nil, 0, err
	}
	if fields := validate.Struct(input); fields != nil {
		return nil, 0, validationFailed(fields)
	}

	rec, err := h.Store.Create(r.Context(), models.RecipeDraft{
		Title:          input.Title,
		RecipeImageURL: input.RecipeImageURL,
		Ingredients:    input.Ingredients,
		Instructions:   input.Instructions,
		PrepTime:       input.PrepTime,
		CookTime:       input.CookTime,
		TotalTime:      input.TotalTime,
	})
	if err != nil {
		return nil, 0, err
	}

	h.recordMutation(r, models.AuditCreate, rec.ID)
	return rec, http.StatusCreated, nil
}

//
// ==========================
// List Recipes (public; optional limit/offset)
// ==========================
//

func (h *RecipeHandler) FindAll(r *http.Request) (any, int, error) {
	limit := 0
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	recipes, err := h.Store.List(r.Context(), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return recipes, http.StatusOK, nil
}

//
// ==========================
// Get Recipe By ID (public)
// ==========================
//

func (h *RecipeHandler) FindOne(r *http.Request) (any, int, error) {
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, 0, recipeErr(err)
	}
	return rec, http.StatusOK, nil
}

//
// ==========================
// Update Recipe (merge provided fields only)
// ==========================
//

func (h *RecipeHandler) Update(r *http.Request) (any, int, error) {
	id := chi.URLParam(r, "id")

	var input updateRecipeInput
	if err := decodeJSON(r, &input); err != nil {
		return nil, 0, err
	}
	if fields := validate.Struct(input); fields != nil {
		return nil, 0, validationFailed(fields)
	}

	rec, err := h.Store.Update(r.Context(), id, models.RecipePatch{
		Title:          input.Title,
		RecipeImageURL: input.RecipeImageURL,
		Ingredients:    input.Ingredients,
		Instructions:   input.Instructions,
		PrepTime:       input.PrepTime,
		CookTime:       input.CookTime,
		TotalTime:      input.TotalTime,
	})
	if err != nil {
		return nil, 0, recipeErr(err)
	}

	h.recordMutation(r, models.AuditUpdate, rec.ID)
	return rec, http.StatusOK, nil
}

//
// ==========================
// Delete Recipe
// ==========================
//

func (h *RecipeHandler) Remove(r *http.Request) (any, int, error) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), id); err != nil {
		return nil, 0, recipeErr(err)
	}

	h.recordMutation(r, models.AuditDelete, id)
	return nil, http.StatusNoContent, nil
}

func recipeErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return notFound(msgRecipeNotFound)
	}
	return err
}

// recordMutation bumps the mutation counter and writes an audit entry.
// Audit failures are logged and never fail the request.
func (h *RecipeHandler) recordMutation(r *http.Request, action, recipeID string) {
	metrics.IncRecipeMutations(action)
	if h.Audit == nil {
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return
	}
	if err := h.Audit.Log(r.Context(), userID, action, models.ResourceRecipe, recipeID, ""); err != nil {
		slog.Warn("audit log failed", "action", action, "recipe_id", recipeID, "error", err)
	}
}
