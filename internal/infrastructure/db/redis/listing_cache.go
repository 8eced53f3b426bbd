package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

const listingTTL = time.Minute

// cacheVersionKey holds a generation counter folded into every listing key.
// Bumping it invalidates all cached listings in one write, avoiding SCAN.
const cacheVersionKey = "listings:version"

// ListingCache caches approved-content listings in Redis. It is strictly
// best-effort: the store stays authoritative and every moderation change
// bumps the generation so stale entries are never served.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// Get returns the cached listing for key, if present.
func (c *ListingCache) Get(ctx context.Context, key string) ([]*domain.Content, bool, error) {
	raw, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var items []*domain.Content
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("listing cache decode: %w", err)
	}
	return items, true, nil
}

// Set stores a listing under key (expires after listingTTL).
func (c *ListingCache) Set(ctx context.Context, key string, items []*domain.Content) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("listing cache encode: %w", err)
	}
	return c.client.Set(ctx, c.versionedKey(ctx, key), raw, listingTTL).Err()
}

// Invalidate drops every cached listing by advancing the generation counter.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

func (c *ListingCache) versionedKey(ctx context.Context, key string) string {
	version, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		version = -1
	}
	return fmt.Sprintf("%s:g%d", key, version)
}
