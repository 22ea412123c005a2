package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
)

// SellerConfigRepository defines the read contract for seller shipping
// configurations.
type SellerConfigRepository interface {
	// GetCandidateConfigs retrieves the active configs that could apply to a
	// shipment: configs scoped to the given seller, carrier and zone, plus
	// configs with any of those dimensions unset. Results are ordered by
	// priority ascending; specificity ranking happens in the domain.
	GetCandidateConfigs(ctx context.Context, sellerID string, carrierID, zoneID kernel.UUID) ([]*shipping.SellerConfig, error)
}
