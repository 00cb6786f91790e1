package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workmania/timetrack/internal/api/middleware"
	"github.com/workmania/timetrack/internal/core/ports"
)

// AuthHandler handles employee-code login and the session cookie lifecycle.
type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
	secure      bool
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration, secure bool) *AuthHandler {
	if cookieTTL <= 0 {
		cookieTTL = 30 * 24 * time.Hour
	}
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL, secure: secure}
}

type loginRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=64"`
}

type userResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
}

// Login authenticates by employee code and sets the session cookie.
//
// @Summary      Login with an employee code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Employee code"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.EmployeeID)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token, h.cookieTTL))
	return c.JSON(http.StatusOK, userResponse{ID: user.ID, EmployeeID: user.EmployeeID})
}

// Logout clears the session cookie. Always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Me returns the identity of the current session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	employeeID, _ := c.Get("employee_id").(string)
	return c.JSON(http.StatusOK, userResponse{ID: userID, EmployeeID: employeeID})
}

type registerRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=64"`
}

// Register creates an account for a new employee code.
//
// @Summary      Register an employee code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Employee code"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.EmployeeID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{ID: user.ID, EmployeeID: user.EmployeeID})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
