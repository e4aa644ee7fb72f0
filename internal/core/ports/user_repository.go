package ports

import (
	"context"

	"github.com/recetario/recipe-book/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	// Create persists a new user and returns it with its assigned ID.
	// Returns domain.ErrUserExists or domain.ErrEmailExists on collisions.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
