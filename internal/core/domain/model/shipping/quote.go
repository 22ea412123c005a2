package shipping

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultQuoteTTL is how long a cached quote stays servable.
const DefaultQuoteTTL = time.Hour

// Quote is a cached shipping computation for one seller's shipment: the
// options computed for a destination and item set, valid until ExpiresAt.
// Quotes marshal to JSON for the external cache backends.
type Quote struct {
	CacheKey    string           `json:"cache_key"`
	SellerID    string           `json:"seller_id"`
	PostalCode  string           `json:"postal_code"`
	Fingerprint string           `json:"fingerprint"`
	Options     []ShippingOption `json:"options"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// NewQuote creates a Quote expiring ttl after now.
func NewQuote(cacheKey, sellerID, postalCode, fingerprint string, options []ShippingOption, now time.Time, ttl time.Duration) Quote {
	return Quote{
		CacheKey:    cacheKey,
		SellerID:    sellerID,
		PostalCode:  postalCode,
		Fingerprint: fingerprint,
		Options:     options,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// Expired reports whether the quote must no longer be served at the given
// instant. A quote expires exactly at ExpiresAt.
func (q Quote) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}

// ItemsFingerprint derives a stable digest of the quote-relevant item fields:
// product, quantity and weight. Item order does not affect the digest, so
// reordered carts hit the same cache entry. Price changes intentionally do
// not invalidate quotes; rules depending on cart value are cheap to recompute
// and carts rarely change value without changing items.
func ItemsFingerprint(items []CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s:%d:%s",
			item.ProductID,
			item.Quantity,
			strconv.FormatFloat(item.WeightGrams, 'f', -1, 64),
		))
	}
	sort.Strings(parts)

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:16]
}

// QuoteCacheKey builds the cache key for a seller's shipment to a postal
// code. Seller-less lookups share a single "global" scope.
func QuoteCacheKey(postalCode, sellerID, fingerprint string) string {
	scope := sellerID
	if scope == "" {
		scope = "global"
	}
	return fmt.Sprintf("shipping:%s:%s:%s", postalCode, scope, fingerprint)
}
