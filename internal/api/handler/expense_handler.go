package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recetario/recipe-book/internal/core/domain"
	"github.com/recetario/recipe-book/internal/core/ports"
)

// ExpenseHandler handles HTTP requests for the budget ledger.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

type createExpenseRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"        validate:"gte=0"`
}

type updateExpenseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
}

type expenseResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type expenseListResponse struct {
	Data []expenseResponse `json:"data"`
}

type expenseTotalResponse struct {
	Total float64 `json:"total"`
}

func toExpenseResponse(e *domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Cost:        e.Cost,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func toExpenseListResponse(items []*domain.Expense) expenseListResponse {
	out := make([]expenseResponse, len(items))
	for i, e := range items {
		out[i] = toExpenseResponse(e)
	}
	return expenseListResponse{Data: out}
}

func expenseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid expense id")
	}
	return id, nil
}

// Create handles POST /v1/expenses.
func (h *ExpenseHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.service.Create(c.Request().Context(), ports.CreateExpenseInput{
		OwnerID:     caller.UserID,
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// Get handles GET /v1/expenses/:id.
func (h *ExpenseHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	id, err := expenseID(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Update handles PATCH /v1/expenses/:id.
func (h *ExpenseHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	id, err := expenseID(c)
	if err != nil {
		return err
	}

	var req updateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	expense, err := h.service.Update(c.Request().Context(), caller, id, ports.ExpenseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Delete handles DELETE /v1/expenses/:id.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	id, err := expenseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/expenses.
func (h *ExpenseHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListByOwner(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toExpenseListResponse(items))
}

// Search handles GET /v1/expenses/search?title=frag.
func (h *ExpenseHandler) Search(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	fragment := c.QueryParam("title")
	if fragment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title query parameter is required")
	}

	items, err := h.service.SearchByTitle(c.Request().Context(), caller.UserID, fragment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toExpenseListResponse(items))
}

// Total handles GET /v1/expenses/total.
func (h *ExpenseHandler) Total(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	total, err := h.service.TotalByOwner(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, expenseTotalResponse{Total: total})
}
