package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the user identity injected by the Session middleware.
// Presence proves the middleware ran; a missing id on a protected route is a
// wiring bug surfaced as 401 rather than a panic.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return userID, nil
}
