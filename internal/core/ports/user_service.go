package ports

import (
	"context"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// UserService covers profile management and admin user administration.
type UserService interface {
	Profile(ctx context.Context, claims *domain.Claims, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, claims *domain.Claims, userID string, profile domain.Profile) (*domain.User, error)
	// SetProfilePicture stores ref as the user's picture; an empty ref
	// removes it. Owner only.
	SetProfilePicture(ctx context.Context, claims *domain.Claims, userID, ref string) (*domain.User, error)
	ListUsers(ctx context.Context, claims *domain.Claims) ([]*domain.User, error)
	SetUserStatus(ctx context.Context, claims *domain.Claims, userID, status string) error
}
