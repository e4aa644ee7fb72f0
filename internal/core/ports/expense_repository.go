package ports

import (
	"context"

	"github.com/recetario/recipe-book/internal/core/domain"
)

// ExpenseUpdate carries a partial update for a ledger entry.
// Same nil-means-keep convention as RecipeUpdate.
type ExpenseUpdate struct {
	Title       *string
	Description *string
	Cost        *float64
}

// ExpenseRepository defines persistence operations for the budget ledger.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Expense, error)
	Update(ctx context.Context, id int64, upd ExpenseUpdate) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error)
	SearchByTitle(ctx context.Context, ownerID, fragment string) ([]*domain.Expense, error)
	// TotalByOwner returns the sum of all costs recorded by ownerID.
	TotalByOwner(ctx context.Context, ownerID string) (float64, error)
}
