package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
	"github.com/recetario/recipe-book/internal/pkg/config"
)

// EnsureAdmin creates the configured admin account if it does not exist yet.
// It is a no-op when the admin config is incomplete.
func EnsureAdmin(ctx context.Context, users ports.UserRepository, cfg config.AdminConfig, log zerolog.Logger) error {
	if cfg.Username == "" || cfg.Password == "" || cfg.Email == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) || errors.Is(err, domain.ErrEmailExists) {
		log.Debug().Str("username", cfg.Username).Msg("admin account already present")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	log.Info().Str("username", cfg.Username).Msg("admin account created")
	return nil
}
