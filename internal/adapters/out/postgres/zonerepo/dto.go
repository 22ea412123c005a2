// Package zonerepo provides data transfer objects and mapping functions for
// carrier coverage zones. Zones are administered outside the engine, so the
// repository is read-only and converts rows into validated domain records,
// rejecting malformed data at the boundary.
package zonerepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"

	"github.com/google/uuid"
)

// CarrierDTO represents the database structure of a carrier.
type CarrierDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null"`
	Type     string    `gorm:"not null"`
	IsActive bool      `gorm:"index"`
}

// TableName specifies the database table name for carriers.
func (CarrierDTO) TableName() string {
	return "carriers"
}

// ZoneDTO represents the database structure of a coverage zone with its
// carrier join and postal code ranges.
type ZoneDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	CarrierID uuid.UUID `gorm:"type:uuid;index;not null"`
	Carrier   CarrierDTO
	State     string                `gorm:"type:char(2)"`
	Ranges    []PostalCodeRangeDTO  `gorm:"foreignKey:ZoneID"`
	Priority  int                   `gorm:"not null;default:1"`
	IsActive  bool                  `gorm:"index"`
}

// TableName specifies the database table name for zones.
func (ZoneDTO) TableName() string {
	return "zones"
}

// PostalCodeRangeDTO represents one postal code interval of a zone.
type PostalCodeRangeDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ZoneID   uuid.UUID `gorm:"type:uuid;index;not null"`
	FromCode int       `gorm:"not null"`
	ToCode   int       `gorm:"not null"`
}

// TableName specifies the database table name for zone postal code ranges.
func (PostalCodeRangeDTO) TableName() string {
	return "zone_postal_code_ranges"
}

// toDomain converts a zone row with its joins into a validated domain zone.
func toDomain(dto ZoneDTO) (*shipping.Zone, error) {
	carrierID, err := kernel.UUIDFromBytes(dto.Carrier.ID[:])
	if err != nil {
		return nil, err
	}

	carrierType, err := shipping.CarrierTypeFromString(dto.Carrier.Type)
	if err != nil {
		return nil, err
	}

	carrier, err := shipping.NewCarrier(carrierID, dto.Carrier.Name, carrierType, dto.Carrier.IsActive)
	if err != nil {
		return nil, err
	}

	zoneID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ranges := make([]shipping.PostalCodeRange, 0, len(dto.Ranges))
	for _, rangeDTO := range dto.Ranges {
		r, rangeErr := shipping.NewPostalCodeRange(rangeDTO.FromCode, rangeDTO.ToCode)
		if rangeErr != nil {
			return nil, rangeErr
		}
		ranges = append(ranges, r)
	}

	return shipping.NewZone(zoneID, dto.Name, carrier, dto.State, ranges, dto.Priority, dto.IsActive)
}
