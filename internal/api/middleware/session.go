package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session token.
const SessionCookie = "timetrack_session"

// Session validates the session-cookie JWT and injects the user identity into
// context. Every /v1 route runs behind this; handlers read the identity via
// the user_id / employee_id keys.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "session missing user identity")
			}

			c.Set("user_id", userID)
			c.Set("employee_id", claims["employee_id"])

			return next(c)
		}
	}
}
