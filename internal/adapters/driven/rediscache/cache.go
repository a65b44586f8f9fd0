// Package rediscache provides a Redis-backed result cache keyed by content
// hash, so identical units shared across documents hit the processor once.
package rediscache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultCache = (*Cache)(nil)

const keyPrefix = "lingo:result:"

// Cache stores processed text in Redis with a TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a cache. A zero TTL means entries never expire.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key derives the content-addressed cache key for a unit: a BLAKE3 hash
// over the language tag and the source text.
func Key(language, source string) string {
	sum := blake3.Sum256([]byte(language + "\x00" + source))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached text, or an error wrapping domain.ErrCacheMiss
// when absent.
func (c *Cache) Get(ctx context.Context, language, source string) (string, error) {
	key := Key(language, source)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("key %s: %w", key, domain.ErrCacheMiss)
	}
	if err != nil {
		return "", fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, nil
}

// Set stores processed text for a (language, source) pair.
func (c *Cache) Set(ctx context.Context, language, source, processed string) error {
	key := Key(language, source)
	if err := c.client.Set(ctx, key, processed, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
