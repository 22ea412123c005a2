package zonerepo

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/shipping"

	"gorm.io/gorm"
)

// GormZoneRepository implements ports.ZoneRepository using GORM.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GORM zone repository.
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// GetActiveZones retrieves every active zone of every active carrier with
// its postal code ranges preloaded. Rows that fail domain validation abort
// the read: a malformed zone must never silently drop out of resolution.
func (r *GormZoneRepository) GetActiveZones(ctx context.Context) ([]*shipping.Zone, error) {
	var dtos []ZoneDTO

	err := r.db.WithContext(ctx).
		Preload("Ranges", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_code ASC")
		}).
		Joins("Carrier").
		Where("zones.is_active = ?", true).
		Where(`"Carrier".is_active = ?`, true).
		Order("zones.priority ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	zones := make([]*shipping.Zone, 0, len(dtos))
	for _, dto := range dtos {
		zone, convErr := toDomain(dto)
		if convErr != nil {
			return nil, fmt.Errorf("zone %s: %w", dto.ID, convErr)
		}
		zones = append(zones, zone)
	}

	return zones, nil
}
