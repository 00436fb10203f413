package repo

import (
	"context"
	"errors"

	"github.com/crucial707/recipe-api/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist,
	// including ids that are not well formed for the backing store.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a user with the same email exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists users. Implemented by UserRepo (Postgres) and MongoUserStore.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RecipeStore persists recipes. Implemented by RecipeRepo (Postgres) and MongoRecipeStore.
type RecipeStore interface {
	Create(ctx context.Context, draft models.RecipeDraft) (*models.Recipe, error)
	// List returns recipes in creation order. limit <= 0 means no limit.
	List(ctx context.Context, limit, offset int) ([]models.Recipe, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	Update(ctx context.Context, id string, patch models.RecipePatch) (*models.Recipe, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// AuditStore records and lists mutations.
type AuditStore interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, details string) error
	List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error)
}
