package ports

import (
	"context"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// AuthService handles registration, login, and token verification.
type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify checks a bearer token and resolves the current account status,
	// returning the explicit claims value threaded through the services.
	Verify(ctx context.Context, token string) (*domain.Claims, error)
}
