package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recetario/recipe-book/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware. A token
// without a user_id claim is structurally valid but operationally unusable,
// so it is rejected before any service call.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	if role == "" || userID == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Caller{UserID: userID, Role: role}, nil
}
