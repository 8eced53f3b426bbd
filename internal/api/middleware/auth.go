package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
)

// ClaimsKey is the echo context key holding the verified *domain.Claims.
const ClaimsKey = "claims"

// Auth validates the bearer token and injects the explicit claims value into
// the request context. Verification re-reads the account, so deactivated
// users are locked out before their token expires.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := auth.Verify(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrStoreUnavailable) {
					return err
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !claims.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "account inactive")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
