package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/recetario/recipe-book/internal/api/handler"
	"github.com/recetario/recipe-book/internal/api/middleware"
	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
	"github.com/recetario/recipe-book/internal/dataset"
)

// Deps carries everything the router needs. Services are injected so the
// transport layer stays independent of the configured storage backend.
type Deps struct {
	JWTSecret string
	Logger    zerolog.Logger

	Auth          ports.AuthService
	Recipes       ports.RecipeService
	Expenses      ports.ExpenseService
	Notifications ports.NotificationService

	// Dataset is nil when no export is configured; the route then 404s.
	// DatasetPath enables the admin reload endpoint.
	Dataset     []dataset.Record
	DatasetPath string

	// HealthChecks probe the dependencies of the configured backend.
	HealthChecks map[string]handler.CheckFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("recipebook"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	recipeHandler := handler.NewRecipeHandler(deps.Recipes)
	expenseHandler := handler.NewExpenseHandler(deps.Expenses)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	datasetHandler := handler.NewDatasetHandler(deps.DatasetPath, deps.Dataset)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	recipes := v1.Group("/recipes")
	recipes.POST("", recipeHandler.Create)
	recipes.GET("", recipeHandler.List)
	recipes.GET("/search", recipeHandler.Search)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PATCH("/:id", recipeHandler.Update)
	recipes.DELETE("/:id", recipeHandler.Delete)
	recipes.POST("/:id/send", notificationHandler.Share)

	expenses := v1.Group("/expenses")
	expenses.POST("", expenseHandler.Create)
	expenses.GET("", expenseHandler.List)
	expenses.GET("/total", expenseHandler.Total)
	expenses.GET("/search", expenseHandler.Search)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PATCH("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	v1.GET("/dataset", datasetHandler.All)
	v1.POST("/dataset/reload", datasetHandler.Reload, middleware.RequireRole(domain.RoleAdmin))

	return e
}
