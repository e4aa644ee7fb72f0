package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recetario/recipe-book/internal/api/metrics"
	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

// RecipeCache abstracts the read-through cache (Redis). Misses and cache
// failures are both non-fatal: the store remains the source of truth.
type RecipeCache interface {
	Get(ctx context.Context, id string) (*domain.Recipe, bool)
	Set(ctx context.Context, r *domain.Recipe)
	Invalidate(ctx context.Context, id string)
}

// noopCache is used when no Redis client is configured.
type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.Recipe, bool) { return nil, false }
func (noopCache) Set(context.Context, *domain.Recipe)                {}
func (noopCache) Invalidate(context.Context, string)                 {}

type recipeService struct {
	repo  ports.RecipeRepository
	cache RecipeCache
	log   zerolog.Logger
}

// NewRecipeService returns a RecipeService. cache may be nil.
func NewRecipeService(repo ports.RecipeRepository, cache RecipeCache, log zerolog.Logger) ports.RecipeService {
	if cache == nil {
		cache = noopCache{}
	}
	return &recipeService{repo: repo, cache: cache, log: log}
}

// Create adds a recipe. Duplicate names are rejected per owner regardless of
// which backend is plugged in.
func (s *recipeService) Create(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	if in.Name == "" || in.OwnerID == "" {
		return nil, fmt.Errorf("create recipe: name and owner are required")
	}

	if _, err := s.repo.FindByOwnerAndName(ctx, in.OwnerID, in.Name); err == nil {
		return nil, domain.ErrDuplicateRecipe
	} else if !errors.Is(err, domain.ErrRecipeNotFound) {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	recipe := &domain.Recipe{
		Name:        in.Name,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		OwnerID:     in.OwnerID,
	}

	created, err := s.repo.Create(ctx, recipe)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create recipe")
		return nil, err
	}

	metrics.RecipesCreatedTotal.Inc()
	s.log.Info().Str("recipe_id", created.ID).Str("owner_id", in.OwnerID).Msg("recipe created")
	return created, nil
}

func (s *recipeService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.Recipe, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		if err := authorize(caller, cached.OwnerID); err != nil {
			return nil, err
		}
		metrics.RecipeCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.RecipeCacheTotal.WithLabelValues("miss").Inc()

	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, recipe.OwnerID); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, recipe)
	return recipe, nil
}

// Update applies a partial update. Nil fields keep their stored value; an
// all-nil update is a no-op that still verifies the recipe exists.
func (s *recipeService) Update(ctx context.Context, caller ports.Caller, id string, upd ports.RecipeUpdate) (*domain.Recipe, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, current.OwnerID); err != nil {
		return nil, err
	}

	// A case-only rename matches the recipe itself in the lookup below, so
	// the guard only fires when the name changes beyond casing.
	if upd.Name != nil && !strings.EqualFold(*upd.Name, current.Name) {
		if _, err := s.repo.FindByOwnerAndName(ctx, current.OwnerID, *upd.Name); err == nil {
			return nil, domain.ErrDuplicateRecipe
		} else if !errors.Is(err, domain.ErrRecipeNotFound) {
			return nil, fmt.Errorf("update recipe: %w", err)
		}
	}

	if !upd.IsZero() {
		if err := s.repo.Update(ctx, id, upd); err != nil {
			return nil, err
		}
	}
	s.cache.Invalidate(ctx, id)

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("recipe_id", id).Msg("recipe updated")
	return updated, nil
}

func (s *recipeService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(caller, current.OwnerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	s.log.Info().Str("recipe_id", id).Msg("recipe deleted")
	return nil
}

func (s *recipeService) ListByOwner(ctx context.Context, ownerID string) ([]domain.RecipeSummary, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// SearchByIngredient is owner-scoped for regular users. Admins search
// across all owners.
func (s *recipeService) SearchByIngredient(ctx context.Context, caller ports.Caller, fragment string) ([]domain.RecipeSummary, error) {
	owner := caller.UserID
	if caller.Role == domain.RoleAdmin {
		owner = ""
	}
	return s.repo.SearchByIngredient(ctx, owner, fragment)
}

// authorize rejects callers operating on another user's recipe.
func authorize(caller ports.Caller, ownerID string) error {
	if caller.Role == domain.RoleAdmin {
		return nil
	}
	if caller.UserID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
