// Package sellerconfigrepo provides data transfer objects and mapping
// functions for seller shipping configurations. Configs are administered
// outside the engine, so the repository is read-only.
package sellerconfigrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SellerConfigDTO represents the database structure of a seller shipping
// configuration. The free shipping ID lists are stored as postgres text
// arrays.
type SellerConfigDTO struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SellerID                *string        `gorm:"index"`
	CarrierID               *uuid.UUID     `gorm:"type:uuid;index"`
	ZoneID                  *uuid.UUID     `gorm:"type:uuid;index"`
	MarkupPct               float64        `gorm:"not null;default:0"`
	FreeShippingThreshold   *float64
	FreeShippingProductIDs  pq.StringArray `gorm:"type:text[]"`
	FreeShippingCategoryIDs pq.StringArray `gorm:"type:text[]"`
	MaxWeightKg             float64        `gorm:"not null;default:0"`
	Priority                int            `gorm:"not null;default:1"`
	IsActive                bool           `gorm:"index"`
}

// TableName specifies the database table name for seller configs.
func (SellerConfigDTO) TableName() string {
	return "seller_shipping_configs"
}

// toDomain converts a config row into a validated domain config.
func toDomain(dto SellerConfigDTO) (*shipping.SellerConfig, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var carrierID *kernel.UUID
	if dto.CarrierID != nil {
		cID, carrierErr := kernel.UUIDFromBytes((*dto.CarrierID)[:])
		if carrierErr != nil {
			return nil, carrierErr
		}
		carrierID = &cID
	}

	var zoneID *kernel.UUID
	if dto.ZoneID != nil {
		zID, zoneErr := kernel.UUIDFromBytes((*dto.ZoneID)[:])
		if zoneErr != nil {
			return nil, zoneErr
		}
		zoneID = &zID
	}

	return shipping.NewSellerConfig(
		id,
		dto.SellerID,
		carrierID,
		zoneID,
		dto.MarkupPct,
		dto.FreeShippingThreshold,
		dto.FreeShippingProductIDs,
		dto.FreeShippingCategoryIDs,
		dto.MaxWeightKg,
		dto.Priority,
		dto.IsActive,
	)
}
