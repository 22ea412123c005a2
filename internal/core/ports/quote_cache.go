package ports

import (
	"context"

	"freight/internal/core/domain/model/shipping"
)

// QuoteCache defines the contract for the quote cache backends.
// Implementations must be safe for concurrent use.
type QuoteCache interface {
	// Get retrieves a non-expired quote by cache key.
	// A miss returns (nil, nil); errors are reserved for backend failures.
	Get(ctx context.Context, key string) (*shipping.Quote, error)

	// Set stores a quote under its CacheKey until its ExpiresAt.
	Set(ctx context.Context, quote *shipping.Quote) error
}
