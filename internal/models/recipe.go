package models

import "time"

// Recipe is a stored recipe. Times are whole minutes. TotalTime is kept as
// supplied and is not derived from PrepTime and CookTime.
type Recipe struct {
	ID             string
	Title          string
	RecipeImageURL string
	Ingredients    []string
	Instructions   string
	PrepTime       int
	CookTime       int
	TotalTime      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RecipeDraft carries the fields of a new recipe.
type RecipeDraft struct {
	Title          string
	RecipeImageURL string
	Ingredients    []string
	Instructions   string
	PrepTime       int
	CookTime       int
	TotalTime      int
}

// RecipePatch carries a partial update. Nil fields are left untouched.
type RecipePatch struct {
	Title          *string
	RecipeImageURL *string
	Ingredients    *[]string
	Instructions   *string
	PrepTime       *int
	CookTime       *int
	TotalTime      *int
}

// Empty reports whether the patch changes nothing.
func (p RecipePatch) Empty() bool {
	return p.Title == nil && p.RecipeImageURL == nil && p.Ingredients == nil &&
		p.Instructions == nil && p.PrepTime == nil && p.CookTime == nil && p.TotalTime == nil
}
