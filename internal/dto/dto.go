// Package dto holds the outward-facing shapes of the API. Each shape is
// built by an explicit mapping function that names every exposed field;
// anything not listed, credential material included, never reaches the wire.
package dto

import "github.com/crucial707/recipe-api/internal/models"

// FetchUserDto is the public view of a user. Token is only set when the
// profile is returned alongside a freshly issued token.
type FetchUserDto struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Token     string `json:"token,omitempty"`
}

// FetchRecipeDto is the public view of a recipe.
type FetchRecipeDto struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	RecipeImageURL string   `json:"recipeImageUrl"`
	Ingredients    []string `json:"ingredients"`
	Instructions   string   `json:"instructions"`
	PrepTime       int      `json:"prepTime"`
	CookTime       int      `json:"cookTime"`
	TotalTime      int      `json:"totalTime"`
}

// TokenUserDto is the login response.
type TokenUserDto struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// FetchUser exposes the public profile fields of u and nothing else.
func FetchUser(u models.User) FetchUserDto {
	return FetchUserDto{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// FetchRecipe exposes the recipe fields; nil ingredients become an empty list.
func FetchRecipe(r models.Recipe) FetchRecipeDto {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return FetchRecipeDto{
		ID:             r.ID,
		Title:          r.Title,
		RecipeImageURL: r.RecipeImageURL,
		Ingredients:    ingredients,
		Instructions:   r.Instructions,
		PrepTime:       r.PrepTime,
		CookTime:       r.CookTime,
		TotalTime:      r.TotalTime,
	}
}

// TokenUser pairs u's email with a freshly issued token.
func TokenUser(u models.User, token string) TokenUserDto {
	return TokenUserDto{Email: u.Email, Token: token}
}
