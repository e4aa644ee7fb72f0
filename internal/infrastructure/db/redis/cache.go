package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/pkg/logger"
)

const cacheTTL = 10 * time.Minute

// RecipeCache is a read-through cache for recipe lookups. Entries live under
// cache:recipe:<id> as JSON and expire after cacheTTL. Cache failures are
// logged and treated as misses so Redis trouble never breaks a read.
type RecipeCache struct {
	client *redis.Client
}

func NewRecipeCache(client *redis.Client) *RecipeCache {
	return &RecipeCache{client: client}
}

func cacheKey(id string) string { return "cache:recipe:" + id }

func (c *RecipeCache) Get(ctx context.Context, id string) (*domain.Recipe, bool) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("recipe_id", id).Msg("recipe cache read failed")
		return nil, false
	}

	var recipe domain.Recipe
	if err := json.Unmarshal(raw, &recipe); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("recipe_id", id).Msg("recipe cache entry corrupt")
		_ = c.client.Del(ctx, cacheKey(id)).Err()
		return nil, false
	}
	return &recipe, true
}

func (c *RecipeCache) Set(ctx context.Context, recipe *domain.Recipe) {
	raw, err := json.Marshal(recipe)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(recipe.ID), raw, cacheTTL).Err(); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("recipe_id", recipe.ID).Msg("recipe cache write failed")
	}
}

func (c *RecipeCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("recipe_id", id).Msg("recipe cache invalidate failed")
	}
}
