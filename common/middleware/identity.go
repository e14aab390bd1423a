package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UsernameKey is the context key for the acting admin user
	UsernameKey ContextKey = "username"
)

// ExtractUsername extracts the X-User-ID header and stores it in the
// request context. The value feeds the created_by/updated_by audit columns
// and the per-user write rate limit; an empty header is allowed.
func ExtractUsername() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Request().Header.Get("X-User-ID")
			if username != "" {
				c.Set(string(UsernameKey), username)
			}
			return next(c)
		}
	}
}

// ExtractUsernameStrict requires the X-User-ID header and rejects requests
// without it
func ExtractUsernameStrict() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Request().Header.Get("X-User-ID")
			if username == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "X-User-ID header required",
				})
			}
			c.Set(string(UsernameKey), username)
			return next(c)
		}
	}
}

// GetUsername returns the acting user from the echo context, or "" when the
// request carried no identity
func GetUsername(c echo.Context) string {
	if username, ok := c.Get(string(UsernameKey)).(string); ok {
		return username
	}
	return ""
}
