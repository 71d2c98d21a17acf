// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// drafts.go provides a Valkey-backed cache for carousel preview payloads.
// A preview is recomputed from the stored draft on every cache miss, so the
// cache is purely an optimization for the editor's polling loop. Cache
// errors degrade to a miss, never to a request failure.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// draftKeyPrefix is the Valkey key prefix for cached preview payloads.
	draftKeyPrefix = "draft:"

	// DefaultDraftTTL is how long a preview payload stays cached. Drafts
	// are invalidated on every regeneration, so the TTL only bounds
	// abandoned drafts.
	DefaultDraftTTL = 24 * time.Hour
)

// DraftCache manages carousel preview JSON caching in Valkey.
type DraftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a new draft cache backed by the given Valkey client.
func NewDraftCache(client *redis.Client, ttl time.Duration) *DraftCache {
	if ttl == 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftCache{client: client, ttl: ttl}
}

// Get retrieves a cached preview payload for a carousel id.
func (dc *DraftCache) Get(ctx context.Context, carouselID string) ([]byte, bool) {
	val, err := dc.client.Get(ctx, draftKeyPrefix+carouselID).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("draft cache get error", "carousel_id", carouselID, "error", err)
		return nil, false
	}
	slog.Debug("draft cache hit", "carousel_id", carouselID)
	return val, true
}

// Set stores a preview payload for a carousel id with the configured TTL.
func (dc *DraftCache) Set(ctx context.Context, carouselID string, payload []byte) {
	if err := dc.client.Set(ctx, draftKeyPrefix+carouselID, payload, dc.ttl).Err(); err != nil {
		slog.Warn("draft cache set error", "carousel_id", carouselID, "error", err)
	}
}

// Invalidate removes a single carousel's cached preview. Called whenever a
// regeneration changes the draft's slides.
func (dc *DraftCache) Invalidate(ctx context.Context, carouselID string) {
	if err := dc.client.Del(ctx, draftKeyPrefix+carouselID).Err(); err != nil {
		slog.Warn("draft cache invalidate error", "carousel_id", carouselID, "error", err)
	}
	slog.Debug("draft cache invalidated", "carousel_id", carouselID)
}

// InvalidateAll removes all cached previews by scanning for the prefix.
// Used when a template changes, since any draft built on it could be affected.
func (dc *DraftCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := dc.client.Scan(ctx, cursor, draftKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("draft cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := dc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("draft cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("draft cache fully cleared", "deleted", deleted)
	}
}
