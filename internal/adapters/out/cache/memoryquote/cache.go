// Package memoryquote provides a process-local quote cache. It is the default
// backend for single-instance deployments; multi-instance deployments share
// quotes through the redis backend instead.
package memoryquote

import (
	"context"
	"sync"
	"time"

	"freight/internal/core/domain/model/shipping"
)

// MemoryQuoteCache implements ports.QuoteCache with a mutex-guarded map.
// Expired entries are invisible to Get immediately but stay in memory until
// the next PurgeExpired sweep.
type MemoryQuoteCache struct {
	mu      sync.RWMutex
	entries map[string]shipping.Quote
	now     func() time.Time
}

// NewMemoryQuoteCache creates an empty in-memory quote cache.
func NewMemoryQuoteCache() *MemoryQuoteCache {
	return &MemoryQuoteCache{
		entries: make(map[string]shipping.Quote),
		now:     time.Now,
	}
}

// Get retrieves a non-expired quote by key. A miss or an expired entry
// returns (nil, nil).
func (c *MemoryQuoteCache) Get(_ context.Context, key string) (*shipping.Quote, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	quote, ok := c.entries[key]
	if !ok || quote.Expired(c.now()) {
		return nil, nil
	}

	return &quote, nil
}

// Set stores a quote under its CacheKey.
func (c *MemoryQuoteCache) Set(_ context.Context, quote *shipping.Quote) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[quote.CacheKey] = *quote
	return nil
}

// PurgeExpired removes every expired entry and returns how many were removed.
// Called periodically by the sweep job.
func (c *MemoryQuoteCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	purged := 0

	for key, quote := range c.entries {
		if quote.Expired(now) {
			delete(c.entries, key)
			purged++
		}
	}

	return purged
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryQuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
