package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recetario/recipe-book/internal/core/ports"
)

// NotificationHandler accepts share requests and hands them to the
// background delivery pipeline.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Share handles POST /v1/recipes/:id/send. Delivery is fire and forget:
// a 202 only means the job was accepted.
func (h *NotificationHandler) Share(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req shareRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Share(c.Request().Context(), caller, c.Param("id"), req.Recipient); err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, shareRecipeResponse{Status: "accepted"})
}
