package main

import (
	"context"
	"os"
	"time"

	"github.com/recetario/recipe-book/internal/bootstrap"
	"github.com/recetario/recipe-book/internal/console"
	"github.com/recetario/recipe-book/internal/core/service"
	"github.com/recetario/recipe-book/internal/pkg/config"
	"github.com/recetario/recipe-book/pkg/logger"
)

func main() {
	cfg := config.Load()

	// Logs go to stderr so they never mix with the menu on stdout.
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: os.Stderr,
	})

	ctx := context.Background()

	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("setup store")
	}
	defer store.Close()

	authService := service.NewAuthService(store.Users, cfg.JWTSecret, 24*time.Hour)
	recipeService := service.NewRecipeService(store.Recipes, store.Cache, log)

	app := console.NewApp(authService, recipeService, os.Stdin, os.Stdout)
	app.Run(ctx)
}
