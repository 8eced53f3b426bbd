package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucspstream/streaming-api/internal/api/middleware"
	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: presence proves the middleware
// ran, and every downstream operation takes the claims explicitly.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if claims == nil || claims.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
