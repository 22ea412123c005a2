package raterepo

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"

	"gorm.io/gorm"
)

// GormRateRepository implements ports.RateRepository using GORM.
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GORM rate repository.
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// GetActiveRates retrieves the active rates of a carrier within a zone,
// ordered by priority, with weight tiers preloaded in ascending order.
func (r *GormRateRepository) GetActiveRates(ctx context.Context, zoneID, carrierID kernel.UUID) ([]*shipping.Rate, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RateDTO

	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_grams ASC")
		}).
		Where("zone_id = ?", zoneID.Bytes()).
		Where("carrier_id = ?", carrierID.Bytes()).
		Where("is_active = ?", true).
		Order("priority ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rates := make([]*shipping.Rate, 0, len(dtos))
	for _, dto := range dtos {
		rate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, fmt.Errorf("rate %s: %w", dto.ID, convErr)
		}
		rates = append(rates, rate)
	}

	return rates, nil
}
