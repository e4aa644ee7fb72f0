// Package bootstrap wires the configured storage backend into the repository
// set shared by the HTTP server and the console client.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/recetario/recipe-book/internal/api/handler"
	"github.com/recetario/recipe-book/internal/core/ports"
	"github.com/recetario/recipe-book/internal/core/service"
	mongodb "github.com/recetario/recipe-book/internal/infrastructure/db/mongo"
	redisdb "github.com/recetario/recipe-book/internal/infrastructure/db/redis"
	"github.com/recetario/recipe-book/internal/infrastructure/db/sqlite"
	"github.com/recetario/recipe-book/internal/pkg/config"
)

// Store bundles the backend-specific pieces the entrypoints wire together.
// Cache and Dedup are nil unless the Redis backend is selected.
type Store struct {
	Users        ports.UserRepository
	Recipes      ports.RecipeRepository
	Cache        service.RecipeCache
	Dedup        service.ShareDedup
	HealthChecks map[string]handler.CheckFunc
	Close        func()
}

// BuildStore opens the backend named by cfg.StoreBackend and returns its
// repositories, ready to use (schemas created, indexes ensured).
func BuildStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		users := sqlite.NewUserRepository(db)
		recipes := sqlite.NewRecipeRepository(db)
		if err := users.Init(ctx); err != nil {
			db.Close()
			return nil, err
		}
		if err := recipes.Init(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &Store{
			Users:        users,
			Recipes:      recipes,
			HealthChecks: map[string]handler.CheckFunc{"sqlite": db.PingContext},
			Close:        func() { db.Close() },
		}, nil

	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		users := mongodb.NewUserRepository(db)
		recipes := mongodb.NewRecipeRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		if err := recipes.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Store{
			Users:   users,
			Recipes: recipes,
			HealthChecks: map[string]handler.CheckFunc{
				"mongo": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			},
			Close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:   redisdb.NewUserRepository(client),
			Recipes: redisdb.NewRecipeRepository(client),
			Cache:   redisdb.NewRecipeCache(client),
			Dedup:   redisdb.NewShareDedup(client),
			HealthChecks: map[string]handler.CheckFunc{
				"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
			},
			Close: func() { _ = client.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
