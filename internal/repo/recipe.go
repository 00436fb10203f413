package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crucial707/recipe-api/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const recipeColumns = `id, title, recipe_image_url, ingredients, instructions, prep_time, cook_time, total_time, created_at, updated_at`

// ========================
// REPOSITORY STRUCT
// ========================

type RecipeRepo struct {
	DB *sql.DB
}

func NewRecipeRepo(db *sql.DB) *RecipeRepo {
	return &RecipeRepo{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var rec models.Recipe
	var ingredients pq.StringArray
	err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.RecipeImageURL,
		&ingredients,
		&rec.Instructions,
		&rec.PrepTime,
		&rec.CookTime,
		&rec.TotalTime,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = []string(ingredients)
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}
	return &rec, nil
}

// ========================
// CREATE RECIPE
// ========================

func (r *RecipeRepo) Create(ctx context.Context, d models.RecipeDraft) (*models.Recipe, error) {
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO recipes (id, title, recipe_image_url, ingredients, instructions, prep_time, cook_time, total_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+recipeColumns,
		uuid.New().String(), d.Title, d.RecipeImageURL, pq.Array(ingredients), d.Instructions,
		d.PrepTime, d.CookTime, d.TotalTime,
	)
	rec, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return rec, nil
}

// ========================
// LIST RECIPES
// ========================

func (r *RecipeRepo) List(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at, id`
	var args []any
	switch {
	case limit > 0:
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, max(offset, 0))
	case offset > 0:
		query += ` OFFSET $1`
		args = append(args, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *rec)
	}
	return recipes, rows.Err()
}

// ========================
// GET RECIPE BY ID
// ========================

func (r *RecipeRepo) Get(ctx context.Context, id string) (*models.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := r.DB.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// ========================
// UPDATE RECIPE BY ID
// ========================

// Update merges the non-nil fields of patch in a single statement; absent
// fields keep their stored value via COALESCE.
func (r *RecipeRepo) Update(ctx context.Context, id string, p models.RecipePatch) (*models.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	if p.Empty() {
		return r.Get(ctx, id)
	}

	var ingredients any
	if p.Ingredients != nil {
		ingredients = pq.Array(*p.Ingredients)
	}

	row := r.DB.QueryRowContext(ctx,
		`UPDATE recipes SET
		   title = COALESCE($2, title),
		   recipe_image_url = COALESCE($3, recipe_image_url),
		   ingredients = COALESCE($4::text[], ingredients),
		   instructions = COALESCE($5, instructions),
		   prep_time = COALESCE($6, prep_time),
		   cook_time = COALESCE($7, cook_time),
		   total_time = COALESCE($8, total_time),
		   updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+recipeColumns,
		id, p.Title, p.RecipeImageURL, ingredients, p.Instructions, p.PrepTime, p.CookTime, p.TotalTime,
	)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return rec, nil
}

// ========================
// DELETE RECIPE BY ID
// ========================

func (r *RecipeRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ========================
// COUNT RECIPES
// ========================

func (r *RecipeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&n)
	return n, err
}
