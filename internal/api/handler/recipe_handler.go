package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recetario/recipe-book/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// Create handles POST /v1/recipes.
func (h *RecipeHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.service.Create(c.Request().Context(), ports.CreateRecipeInput{
		OwnerID:     caller.UserID,
		Name:        req.Name,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRecipeResponse(recipe))
}

// Get handles GET /v1/recipes/:id.
func (h *RecipeHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	recipe, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Update handles PATCH /v1/recipes/:id.
func (h *RecipeHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	recipe, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), ports.RecipeUpdate{
		Name:        req.Name,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Delete handles DELETE /v1/recipes/:id.
func (h *RecipeHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/recipes. The listing is always owner-scoped.
func (h *RecipeHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListByOwner(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRecipeListResponse(items))
}

// Search handles GET /v1/recipes/search?ingredient=frag.
func (h *RecipeHandler) Search(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	fragment := c.QueryParam("ingredient")
	if fragment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ingredient query parameter is required")
	}

	items, err := h.service.SearchByIngredient(c.Request().Context(), caller, fragment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRecipeListResponse(items))
}
