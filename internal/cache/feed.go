// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// feed.go provides a Valkey-backed cache for the paginated public feed.
// The serialized JSON of each feed page is stored under a page/limit key
// and the whole keyspace is invalidated on any article mutation, since
// likes, comments, and moderation all change what a page contains.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// feedKeyPrefix namespaces feed keys in Valkey.
	feedKeyPrefix = "feed:"

	// DefaultFeedTTL is how long a cached feed page lives without invalidation.
	DefaultFeedTTL = 5 * time.Minute
)

// FeedCache caches serialized feed responses. A nil *FeedCache is valid
// and disables caching, so the API runs without Valkey.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a feed cache backed by the given Valkey client.
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	if ttl == 0 {
		ttl = DefaultFeedTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

// PageKey returns the cache key for one feed page.
func PageKey(page, limit int) string {
	return fmt.Sprintf("p%d-l%d", page, limit)
}

// Get retrieves a cached feed page. Returns false on miss or when caching
// is disabled.
func (fc *FeedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if fc == nil {
		return nil, false
	}
	val, err := fc.client.Get(ctx, feedKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("feed cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("feed cache hit", "key", key)
	return val, true
}

// Set stores a serialized feed page with the configured TTL.
func (fc *FeedCache) Set(ctx context.Context, key string, body []byte) {
	if fc == nil {
		return
	}
	if err := fc.client.Set(ctx, feedKeyPrefix+key, body, fc.ttl).Err(); err != nil {
		slog.Warn("feed cache set error", "key", key, "error", err)
	}
}

// Invalidate removes every cached feed page. Called after any article
// mutation, because pagination shifts make targeted invalidation unsafe.
func (fc *FeedCache) Invalidate(ctx context.Context) {
	if fc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := fc.client.Scan(ctx, cursor, feedKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("feed cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := fc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("feed cache delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("feed cache invalidated", "deleted", deleted)
	}
}
