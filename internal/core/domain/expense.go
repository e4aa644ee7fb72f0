package domain

import (
	"errors"
	"time"
)

var ErrExpenseNotFound = errors.New("expense not found")

// Expense is a single entry in a user's budget ledger.
type Expense struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
