package sellerconfigrepo

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"

	"gorm.io/gorm"
)

// GormSellerConfigRepository implements ports.SellerConfigRepository using GORM.
type GormSellerConfigRepository struct {
	db *gorm.DB
}

// NewGormSellerConfigRepository creates a new GORM seller config repository.
func NewGormSellerConfigRepository(db *gorm.DB) *GormSellerConfigRepository {
	return &GormSellerConfigRepository{db: db}
}

// GetCandidateConfigs retrieves the active configs that could govern a
// shipment: each dimension either matches or is unset. Specificity ranking
// happens in the domain; the ordering here only makes results deterministic.
func (r *GormSellerConfigRepository) GetCandidateConfigs(
	ctx context.Context,
	sellerID string,
	carrierID, zoneID kernel.UUID,
) ([]*shipping.SellerConfig, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SellerConfigDTO

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(seller_id = ? OR seller_id IS NULL)", sellerID).
		Where("(carrier_id = ? OR carrier_id IS NULL)", carrierID.Bytes()).
		Where("(zone_id = ? OR zone_id IS NULL)", zoneID.Bytes()).
		Order("priority ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	configs := make([]*shipping.SellerConfig, 0, len(dtos))
	for _, dto := range dtos {
		config, convErr := toDomain(dto)
		if convErr != nil {
			return nil, fmt.Errorf("seller config %s: %w", dto.ID, convErr)
		}
		configs = append(configs, config)
	}

	return configs, nil
}
