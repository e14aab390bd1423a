package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/common/ratelimit"
)

// WriteRateLimit throttles mutating requests per acting user. Reads pass
// through untouched. On limiter errors the request is allowed (fail open
// for availability).
func WriteRateLimit(limiter *ratelimit.RateLimiter, limit int64, windowSec int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				return next(c)
			}

			result, err := limiter.CheckWriteLimit(c.Request().Context(), GetUsername(c), limit, windowSec)
			if err != nil {
				return next(c)
			}

			if !result.Allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":   "write_rate_limit_exceeded",
					"message": "Too many changes in a short time. Please slow down.",
					"details": map[string]interface{}{
						"limit":               result.Limit,
						"retry_after_seconds": result.RetryAfterSeconds,
					},
				})
			}

			return next(c)
		}
	}
}
