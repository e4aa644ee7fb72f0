package ports

import (
	"context"

	"github.com/recetario/recipe-book/internal/core/domain"
)

// RecipeUpdate carries a partial update. A nil field means "leave unchanged";
// a non-nil field replaces the stored value, even when empty. The distinction
// matters: the console flow maps a blank prompt to nil, so users can still
// deliberately clear a field through the API.
type RecipeUpdate struct {
	Name        *string
	Ingredients *[]string
	Steps       *[]string
}

// IsZero reports whether the update would change nothing.
func (u RecipeUpdate) IsZero() bool {
	return u.Name == nil && u.Ingredients == nil && u.Steps == nil
}

// RecipeRepository defines persistence operations for recipes.
// All lookups by id return domain.ErrRecipeNotFound when no record matches.
type RecipeRepository interface {
	Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, id string) (*domain.Recipe, error)
	// FindByOwnerAndName supports the uniform duplicate-name policy.
	FindByOwnerAndName(ctx context.Context, ownerID, name string) (*domain.Recipe, error)
	Update(ctx context.Context, id string, upd RecipeUpdate) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error)
	// SearchByIngredient matches fragment case-insensitively against the joined
	// ingredient text. An empty ownerID searches across all owners.
	SearchByIngredient(ctx context.Context, ownerID, fragment string) ([]domain.RecipeSummary, error)
}
