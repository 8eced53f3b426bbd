package ports

import (
	"context"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// CreateContentInput carries everything needed to create a content record.
// FilePath is a storage reference from the upload gateway or an external URL.
type CreateContentInput struct {
	Title       string
	Description string
	Type        domain.ContentType
	Genre       string
	Duration    string
	FilePath    string
	Thumbnail   string
}

// ListContentFilter narrows the public listing.
type ListContentFilter struct {
	Type  domain.ContentType
	Limit int
}

// ContentService governs the content lifecycle: creation, moderation
// transitions, and visibility filtering.
type ContentService interface {
	Create(ctx context.Context, claims *domain.Claims, in CreateContentInput) (*domain.Content, error)
	List(ctx context.Context, claims *domain.Claims, f ListContentFilter) ([]*domain.Content, error)
	ListPending(ctx context.Context, claims *domain.Claims) ([]*domain.Content, error)
	SetModerationStatus(ctx context.Context, claims *domain.Claims, contentID string, status domain.ModerationStatus) error
	// ListMine returns the caller's catalogue, any status. artistID may be
	// empty (defaults to the caller); non-admins may only pass their own id.
	ListMine(ctx context.Context, claims *domain.Claims, artistID string) ([]*domain.Content, error)
}
