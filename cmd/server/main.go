package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/recetario/recipe-book/internal/api"
	"github.com/recetario/recipe-book/internal/bootstrap"
	"github.com/recetario/recipe-book/internal/core/ports"
	"github.com/recetario/recipe-book/internal/core/service"
	"github.com/recetario/recipe-book/internal/dataset"
	"github.com/recetario/recipe-book/internal/infrastructure/db/sqlite"
	"github.com/recetario/recipe-book/internal/infrastructure/mail"
	"github.com/recetario/recipe-book/internal/infrastructure/queue"
	"github.com/recetario/recipe-book/internal/pkg/config"
	"github.com/recetario/recipe-book/pkg/logger"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("setup store")
	}
	defer store.Close()

	// The ledger always lives in its own SQLite file, whatever backend the
	// recipes use.
	budgetDB, err := sqlite.Open(cfg.SQLite.BudgetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open budget database")
	}
	defer budgetDB.Close()

	expenseRepo := sqlite.NewExpenseRepository(budgetDB)
	if err := expenseRepo.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("init expense repository")
	}

	var mailer ports.Mailer
	if cfg.SMTP.Addr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP.Addr, cfg.SMTP.From)
	} else {
		log.Warn().Msg("SMTP_ADDR not set, mail goes to the log only")
		mailer = mail.NewLogMailer(log)
	}

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, mailer, log)
	dispatcher.Start(ctx)

	if err := bootstrap.EnsureAdmin(ctx, store.Users, cfg.Admin, log); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}

	authService := service.NewAuthService(store.Users, cfg.JWTSecret, tokenTTL)
	recipeService := service.NewRecipeService(store.Recipes, store.Cache, log)
	expenseService := service.NewExpenseService(expenseRepo, log)
	notificationService := service.NewNotificationService(store.Recipes, store.Dedup, dispatcher, log)

	var records []dataset.Record
	if cfg.DatasetPath != "" {
		records, err = dataset.LoadFile(cfg.DatasetPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DatasetPath).Msg("load dataset")
		}
		log.Info().Int("records", len(records)).Msg("dataset loaded")
	}

	checks := store.HealthChecks
	checks["budget_db"] = budgetDB.PingContext

	e := api.NewRouter(api.Deps{
		JWTSecret:     cfg.JWTSecret,
		Logger:        log,
		Auth:          authService,
		Recipes:       recipeService,
		Expenses:      expenseService,
		Notifications: notificationService,
		Dataset:       records,
		DatasetPath:   cfg.DatasetPath,
		HealthChecks:  checks,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("backend", cfg.StoreBackend).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
}
