package ports

import (
	"context"
	"io"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// UploadInput is a single labeled binary payload.
type UploadInput struct {
	// Field is the upload slot: music_file, movie_file, book_file,
	// thumbnail, or profile_picture. It selects the media-type allow-list
	// and the storage subdirectory.
	Field string
	// ContentType is the declared media type; it is validated against the
	// allow-list but the bytes are never inspected.
	ContentType string
	Filename    string
	Size        int64
	Reader      io.Reader
}

// UploadGateway validates and persists binary payloads, returning a storage
// reference consumed by the content and user services.
type UploadGateway interface {
	Store(ctx context.Context, in UploadInput) (string, error)
}

// ListingCache is a best-effort cache for approved content listings. Errors
// are tolerated by callers; the store stays authoritative.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]*domain.Content, bool, error)
	Set(ctx context.Context, key string, items []*domain.Content) error
	// Invalidate drops all cached listings. Called on content creation and
	// moderation changes so public visibility never lags a decision.
	Invalidate(ctx context.Context) error
}
