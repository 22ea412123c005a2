// Package raterepo provides data transfer objects and mapping functions for
// weight-tiered carrier rates. Rates are administered outside the engine, so
// the repository is read-only.
package raterepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"

	"github.com/google/uuid"
)

// RateDTO represents the database structure of one priced carrier service
// within a zone, with its weight tier child rows.
type RateDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ZoneID           uuid.UUID       `gorm:"type:uuid;index:idx_rates_lane;not null"`
	CarrierID        uuid.UUID       `gorm:"type:uuid;index:idx_rates_lane;not null"`
	Tiers            []WeightTierDTO `gorm:"foreignKey:RateID"`
	PricePerKg       float64         `gorm:"not null"`
	Priority         int             `gorm:"not null;default:1"`
	DeliveryDaysMin  int             `gorm:"not null"`
	DeliveryDaysMax  int             `gorm:"not null"`
	InsurancePct     float64
	InsuranceMin     float64
	DeclaredValuePct float64
	DeclaredValueMin float64
	IsActive         bool `gorm:"index"`
}

// TableName specifies the database table name for rates.
func (RateDTO) TableName() string {
	return "rates"
}

// WeightTierDTO represents one step of a rate's weight price table.
type WeightTierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RateID    uuid.UUID `gorm:"type:uuid;index;not null"`
	FromGrams int       `gorm:"not null"`
	ToGrams   int       `gorm:"not null"`
	Price     float64   `gorm:"not null"`
}

// TableName specifies the database table name for rate weight tiers.
func (WeightTierDTO) TableName() string {
	return "rate_weight_tiers"
}

// toDomain converts a rate row with its tiers into a validated domain rate.
// Tiers must arrive ordered by lower bound; the domain constructor enforces
// contiguity on top of that.
func toDomain(dto RateDTO) (*shipping.Rate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	tiers := make([]shipping.WeightTier, 0, len(dto.Tiers))
	for _, tierDTO := range dto.Tiers {
		tier, tierErr := shipping.NewWeightTier(tierDTO.FromGrams, tierDTO.ToGrams, tierDTO.Price)
		if tierErr != nil {
			return nil, tierErr
		}
		tiers = append(tiers, tier)
	}

	fees, err := shipping.NewAdditionalFees(dto.InsurancePct, dto.InsuranceMin, dto.DeclaredValuePct, dto.DeclaredValueMin)
	if err != nil {
		return nil, err
	}

	return shipping.NewRate(
		id, zoneID, carrierID,
		tiers,
		dto.PricePerKg,
		dto.Priority,
		dto.DeliveryDaysMin,
		dto.DeliveryDaysMax,
		fees,
		dto.IsActive,
	)
}
