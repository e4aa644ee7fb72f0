package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

type expenseService struct {
	repo ports.ExpenseRepository
	log  zerolog.Logger
}

// NewExpenseService returns the budget ledger service.
func NewExpenseService(repo ports.ExpenseRepository, log zerolog.Logger) ports.ExpenseService {
	return &expenseService{repo: repo, log: log}
}

func (s *expenseService) Create(ctx context.Context, in ports.CreateExpenseInput) (*domain.Expense, error) {
	if in.Title == "" || in.OwnerID == "" {
		return nil, fmt.Errorf("create expense: title and owner are required")
	}
	if in.Cost < 0 {
		return nil, fmt.Errorf("create expense: cost cannot be negative")
	}

	expense := &domain.Expense{
		Title:       in.Title,
		Description: in.Description,
		Cost:        in.Cost,
		OwnerID:     in.OwnerID,
	}

	id, err := s.repo.Create(ctx, expense)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to record expense")
		return nil, err
	}
	expense.ID = id

	s.log.Info().Int64("expense_id", id).Str("owner_id", in.OwnerID).Msg("expense recorded")
	return expense, nil
}

func (s *expenseService) Get(ctx context.Context, caller ports.Caller, id int64) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, expense.OwnerID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) Update(ctx context.Context, caller ports.Caller, id int64, upd ports.ExpenseUpdate) (*domain.Expense, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, current.OwnerID); err != nil {
		return nil, err
	}
	if upd.Cost != nil && *upd.Cost < 0 {
		return nil, fmt.Errorf("update expense: cost cannot be negative")
	}

	if upd.Title != nil || upd.Description != nil || upd.Cost != nil {
		if err := s.repo.Update(ctx, id, upd); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(ctx, id)
}

func (s *expenseService) Delete(ctx context.Context, caller ports.Caller, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(caller, current.OwnerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *expenseService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *expenseService) SearchByTitle(ctx context.Context, ownerID, fragment string) ([]*domain.Expense, error) {
	return s.repo.SearchByTitle(ctx, ownerID, fragment)
}

func (s *expenseService) TotalByOwner(ctx context.Context, ownerID string) (float64, error) {
	return s.repo.TotalByOwner(ctx, ownerID)
}
