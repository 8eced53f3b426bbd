package ports

import (
	"context"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListNonAdmin returns every user except admins.
	ListNonAdmin(ctx context.Context) ([]*domain.User, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateProfile(ctx context.Context, id string, profile domain.Profile) error
}
