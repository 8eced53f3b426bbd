package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// RBAC enforces a route-level role gate on the injected claims. The services
// re-check authorization through the access package; this middleware exists
// to short-circuit obvious denials before any body parsing.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*domain.Claims)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
