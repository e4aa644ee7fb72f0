package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

// UserRepository stores accounts as hashes under user:<username>.
// A secondary string key email:<address> points back at the username so
// email lookups stay O(1). The username doubles as the account ID.
type UserRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func userKey(username string) string { return "user:" + username }

func emailKey(email string) string { return "email:" + strings.ToLower(email) }

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	exists, err := r.client.Exists(ctx, userKey(user.Username)).Result()
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists > 0 {
		return nil, domain.ErrUserExists
	}

	ok, err := r.client.SetNX(ctx, emailKey(user.Email), user.Username, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("claim email: %w", err)
	}
	if !ok {
		return nil, domain.ErrEmailExists
	}

	now := time.Now().UTC()
	out := *user
	out.ID = out.Username
	out.CreatedAt = now
	out.UpdatedAt = now

	fields := map[string]any{
		"password_hash": out.PasswordHash,
		"email":         out.Email,
		"role":          out.Role,
		"created_at":    now.Unix(),
		"updated_at":    now.Unix(),
	}
	if err := r.client.HSet(ctx, userKey(out.Username), fields).Err(); err != nil {
		// Release the email claim so a retry is not locked out.
		_ = r.client.Del(ctx, emailKey(out.Email)).Err()
		return nil, fmt.Errorf("store user: %w", err)
	}
	return &out, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	fields, err := r.client.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return hydrateUser(username, fields), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	username, err := r.client.Get(ctx, emailKey(email)).Result()
	if err == redis.Nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve email: %w", err)
	}
	return r.FindByUsername(ctx, username)
}

func hydrateUser(username string, fields map[string]string) *domain.User {
	created, _ := strconv.ParseInt(fields["created_at"], 10, 64)
	updated, _ := strconv.ParseInt(fields["updated_at"], 10, 64)
	return &domain.User{
		ID:           username,
		Username:     username,
		Email:        fields["email"],
		PasswordHash: fields["password_hash"],
		Role:         fields["role"],
		CreatedAt:    time.Unix(created, 0).UTC(),
		UpdatedAt:    time.Unix(updated, 0).UTC(),
	}
}
