package ports

import (
	"context"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// ContentFilter narrows a content listing query. Zero values mean "no filter".
type ContentFilter struct {
	Type     domain.ContentType
	Status   domain.ModerationStatus
	ArtistID string
	Limit    int
}

// ContentRepository defines the persistence interface for content records.
type ContentRepository interface {
	Create(ctx context.Context, c *domain.Content) error
	FindByID(ctx context.Context, id string) (*domain.Content, error)
	// List returns records matching the filter ordered by created_at
	// descending, truncated to Limit when Limit > 0.
	List(ctx context.Context, f ContentFilter) ([]*domain.Content, error)
	UpdateStatus(ctx context.Context, id string, status domain.ModerationStatus) error
}
