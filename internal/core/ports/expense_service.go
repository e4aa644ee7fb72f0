package ports

import (
	"context"

	"github.com/recetario/recipe-book/internal/core/domain"
)

// CreateExpenseInput is the DTO for recording a new ledger entry.
type CreateExpenseInput struct {
	OwnerID     string
	Title       string
	Description string
	Cost        float64
}

// ExpenseService exposes the budget ledger operations.
type ExpenseService interface {
	Create(ctx context.Context, in CreateExpenseInput) (*domain.Expense, error)
	Get(ctx context.Context, caller Caller, id int64) (*domain.Expense, error)
	Update(ctx context.Context, caller Caller, id int64, upd ExpenseUpdate) (*domain.Expense, error)
	Delete(ctx context.Context, caller Caller, id int64) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error)
	SearchByTitle(ctx context.Context, ownerID, fragment string) ([]*domain.Expense, error)
	TotalByOwner(ctx context.Context, ownerID string) (float64, error)
}
