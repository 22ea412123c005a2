// Package redisquote provides a redis-backed quote cache so several engine
// instances share computed quotes. Entries expire through redis TTLs; no
// sweeping is needed.
package redisquote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"freight/internal/core/domain/model/shipping"
)

// RedisQuoteCache implements ports.QuoteCache on a redis client.
type RedisQuoteCache struct {
	client *redis.Client
}

// NewRedisQuoteCache creates a quote cache on the given client. The caller
// owns the client's lifecycle.
func NewRedisQuoteCache(client *redis.Client) (*RedisQuoteCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisQuoteCache{client: client}, nil
}

// Get retrieves a quote by key. A missing key returns (nil, nil); a present
// but undecodable value is treated as a miss rather than an error, so a
// format change never breaks quoting.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (*shipping.Quote, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	var quote shipping.Quote
	if err := json.Unmarshal(payload, &quote); err != nil {
		return nil, nil
	}

	return &quote, nil
}

// Set stores the quote under its CacheKey with a TTL matching its ExpiresAt.
// Already-expired quotes are not written.
func (c *RedisQuoteCache) Set(ctx context.Context, quote *shipping.Quote) error {
	ttl := time.Until(quote.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("encoding quote %q: %w", quote.CacheKey, err)
	}

	if err := c.client.Set(ctx, quote.CacheKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", quote.CacheKey, err)
	}

	return nil
}
