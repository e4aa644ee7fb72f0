package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

const createExpensesTable = `
CREATE TABLE IF NOT EXISTS expenses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	cost REAL NOT NULL DEFAULT 0,
	owner_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expenses_owner ON expenses(owner_id);
`

// ExpenseRepository persists the budget ledger. It lives in its own sqlite
// file regardless of the recipe backend, so owner_id is stored as opaque
// text.
type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createExpensesTable); err != nil {
		return fmt.Errorf("create expenses table: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) (int64, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO expenses (title, description, cost, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		e.Title,
		e.Description,
		e.Cost,
		e.OwnerID,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense last insert id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now
	return id, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id int64) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, cost, owner_id, created_at, updated_at
FROM expenses
WHERE id = ?`,
		id,
	)

	var e domain.Expense
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Cost, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id int64, upd ports.ExpenseUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Cost != nil {
		sets = append(sets, "cost = ?")
		args = append(args, *upd.Cost)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, cost, owner_id, created_at, updated_at
FROM expenses
WHERE owner_id = ?
ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *ExpenseRepository) SearchByTitle(ctx context.Context, ownerID, fragment string) ([]*domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, cost, owner_id, created_at, updated_at
FROM expenses
WHERE owner_id = ? AND lower(title) LIKE ?
ORDER BY id`,
		ownerID,
		"%"+strings.ToLower(fragment)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("search expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *ExpenseRepository) TotalByOwner(ctx context.Context, ownerID string) (float64, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(cost), 0) FROM expenses WHERE owner_id = ?`,
		ownerID,
	)

	var total float64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

func scanExpenses(rows *sql.Rows) ([]*domain.Expense, error) {
	var out []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Cost, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
