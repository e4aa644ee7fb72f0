package ports

import (
	"context"

	"github.com/recetario/recipe-book/internal/core/domain"
)

// CreateRecipeInput is the DTO passed from the transport layer to RecipeService.
type CreateRecipeInput struct {
	OwnerID     string
	Name        string
	Ingredients []string
	Steps       []string
}

// Caller identifies the authenticated user performing an operation.
// Admins bypass ownership checks and search globally.
type Caller struct {
	UserID string
	Role   string
}

// RecipeService is the application-level contract for recipe operations.
// Ownership is enforced here, not in repositories: every read or write on a
// single recipe verifies the caller owns it (or is an admin).
type RecipeService interface {
	Create(ctx context.Context, in CreateRecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, caller Caller, id string) (*domain.Recipe, error)
	Update(ctx context.Context, caller Caller, id string, upd RecipeUpdate) (*domain.Recipe, error)
	Delete(ctx context.Context, caller Caller, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error)
	SearchByIngredient(ctx context.Context, caller Caller, fragment string) ([]domain.RecipeSummary, error)
}
