// Package ports defines the driven-side interfaces of the freight engine.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"freight/internal/core/domain/model/shipping"
)

// ZoneRepository defines the read contract for carrier coverage zones.
// The engine never mutates zones; administration tooling owns them.
type ZoneRepository interface {
	// GetActiveZones retrieves every active zone of every active carrier,
	// with coverage ranges loaded. The full set is small enough to scan in
	// memory; resolution logic, not SQL, decides which zone wins.
	GetActiveZones(ctx context.Context) ([]*shipping.Zone, error)
}
