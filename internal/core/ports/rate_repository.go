package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
)

// RateRepository defines the read contract for weight-tiered rate tables.
type RateRepository interface {
	// GetActiveRates retrieves the active rates of a carrier within a zone,
	// with weight tiers loaded in ascending order, sorted by rate priority.
	// An empty result means the carrier publishes no price for that lane.
	GetActiveRates(ctx context.Context, zoneID, carrierID kernel.UUID) ([]*shipping.Rate, error)
}
