package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ucspstream/streaming-api/internal/core/access"
	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
)

// DefaultListLimit caps public listings when the caller supplies none.
const DefaultListLimit = 20

// ContentService governs the content lifecycle. It holds no state of its own;
// every operation is a synchronous unit of work over the repository.
type ContentService struct {
	repo   ports.ContentRepository
	cache  ports.ListingCache
	logger zerolog.Logger
}

// NewContentService returns a ContentService. cache may be nil; listings then
// always hit the repository.
func NewContentService(repo ports.ContentRepository, cache ports.ListingCache, logger zerolog.Logger) *ContentService {
	return &ContentService{repo: repo, cache: cache, logger: logger}
}

// Create persists a new content record owned by the caller. Artists start in
// pending; admin uploads are approved immediately.
func (s *ContentService) Create(ctx context.Context, claims *domain.Claims, in ports.CreateContentInput) (*domain.Content, error) {
	if err := access.Decide(claims, access.OpCreateContent, ""); err != nil {
		return nil, err
	}
	if !domain.ValidContentType(in.Type) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidContentType, in.Type)
	}
	if in.FilePath == "" {
		return nil, domain.ErrMissingPayload
	}

	status := domain.StatusPending
	if claims.IsAdmin() {
		status = domain.StatusApproved
	}

	content := &domain.Content{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Genre:       in.Genre,
		Duration:    in.Duration,
		ArtistID:    claims.UserID,
		FilePath:    in.FilePath,
		Thumbnail:   in.Thumbnail,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, content); err != nil {
		s.logger.Error().Err(err).Str("artist_id", claims.UserID).Msg("failed to create content")
		return nil, err
	}

	s.invalidateListings(ctx)

	s.logger.Info().
		Str("content_id", content.ID).
		Str("type", string(content.Type)).
		Str("status", string(content.Status)).
		Str("artist_id", claims.UserID).
		Msg("content created")

	return content, nil
}

// List returns approved records only, newest first.
func (s *ContentService) List(ctx context.Context, claims *domain.Claims, f ports.ListContentFilter) ([]*domain.Content, error) {
	if err := access.Decide(claims, access.OpReadContent, ""); err != nil {
		return nil, err
	}
	if f.Type != "" && !domain.ValidContentType(f.Type) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidContentType, f.Type)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	key := listingKey(f.Type, limit)
	if s.cache != nil {
		if items, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("listing cache read failed, querying store")
		} else if ok {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx, ports.ContentFilter{
		Type:   f.Type,
		Status: domain.StatusApproved,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items); err != nil {
			s.logger.Warn().Err(err).Msg("listing cache write failed")
		}
	}
	return items, nil
}

// ListPending returns all records awaiting moderation. Admin only.
func (s *ContentService) ListPending(ctx context.Context, claims *domain.Claims) ([]*domain.Content, error) {
	if err := access.Decide(claims, access.OpModerateContent, ""); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ContentFilter{Status: domain.StatusPending})
}

// SetModerationStatus applies an admin decision. Re-applying the current
// status is a no-op success; moving a record out of a terminal state fails.
func (s *ContentService) SetModerationStatus(ctx context.Context, claims *domain.Claims, contentID string, status domain.ModerationStatus) error {
	if err := access.Decide(claims, access.OpModerateContent, ""); err != nil {
		return err
	}
	if !domain.ValidModerationDecision(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	content, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		return err
	}

	if content.Status == status {
		return nil
	}
	if !content.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, content.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, contentID, status); err != nil {
		return err
	}

	s.invalidateListings(ctx)

	s.logger.Info().
		Str("content_id", contentID).
		Str("status", string(status)).
		Str("moderator_id", claims.UserID).
		Msg("moderation status applied")

	return nil
}

// ListMine returns a catalogue including pending and rejected items, newest
// first. Non-admin callers may only read their own.
func (s *ContentService) ListMine(ctx context.Context, claims *domain.Claims, artistID string) ([]*domain.Content, error) {
	if artistID == "" && claims != nil {
		artistID = claims.UserID
	}
	if err := access.Decide(claims, access.OpListOwnContent, artistID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ContentFilter{ArtistID: artistID})
}

func (s *ContentService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}

func listingKey(t domain.ContentType, limit int) string {
	if t == "" {
		return fmt.Sprintf("listing:all:%d", limit)
	}
	return fmt.Sprintf("listing:%s:%d", t, limit)
}
