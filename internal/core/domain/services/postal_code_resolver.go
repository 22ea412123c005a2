package services

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
)

// ErrUnservicedPostalCode is returned when no active zone covers a postal
// code, neither by range nor by state fallback. The destination is simply
// outside every carrier's coverage.
var ErrUnservicedPostalCode = errors.New("no carrier services this postal code")

// ResolvedZone is the outcome of postal code resolution: the zone and carrier
// a shipment to the destination will be priced against.
type ResolvedZone struct {
	ZoneID      kernel.UUID
	CarrierID   kernel.UUID
	ZoneName    string
	CarrierName string
	StateCode   string
}

// PostalCodeResolver is a domain service that matches a destination postal
// code against carrier coverage zones.
//
// Selection rules:
//   - Zones whose ranges contain the code are preferred over state matches
//   - Among range matches, the lowest zone priority wins
//   - Priority ties go to the narrowest covering range
//   - Remaining ties break on zone ID for deterministic output
//   - When no range matches, zones covering the destination state apply,
//     again by priority
type PostalCodeResolver struct{}

// NewPostalCodeResolver creates a new PostalCodeResolver instance.
func NewPostalCodeResolver() PostalCodeResolver {
	return PostalCodeResolver{}
}

// Resolve finds the zone that covers the postal code among the given zones.
// Inactive zones and zones of inactive carriers are skipped. Returns
// ErrUnservicedPostalCode when nothing covers the destination.
func (r PostalCodeResolver) Resolve(postalCode kernel.PostalCode, zones []*shipping.Zone) (ResolvedZone, error) {
	if err := postalCode.Validate(); err != nil {
		return ResolvedZone{}, err
	}

	code := postalCode.Code()

	var (
		best      *shipping.Zone
		bestWidth int
	)

	for _, zone := range zones {
		if err := zone.Validate(); err != nil {
			return ResolvedZone{}, err
		}

		if !zone.IsActive() || !zone.Carrier().IsActive() {
			continue
		}

		covering, ok := zone.CoveringRange(code)
		if !ok {
			continue
		}

		if best == nil || r.beats(zone, covering.Width(), best, bestWidth) {
			best = zone
			bestWidth = covering.Width()
		}
	}

	if best == nil {
		best = r.resolveByState(postalCode.StateCode(), zones)
	}

	if best == nil {
		return ResolvedZone{}, ErrUnservicedPostalCode
	}

	return ResolvedZone{
		ZoneID:      best.ID(),
		CarrierID:   best.Carrier().ID(),
		ZoneName:    best.Name(),
		CarrierName: best.Carrier().Name(),
		StateCode:   postalCode.StateCode(),
	}, nil
}

// beats reports whether the candidate zone outranks the current best
// range match.
func (r PostalCodeResolver) beats(candidate *shipping.Zone, width int, best *shipping.Zone, bestWidth int) bool {
	if candidate.Priority() != best.Priority() {
		return candidate.Priority() < best.Priority()
	}
	if width != bestWidth {
		return width < bestWidth
	}
	return candidate.ID().String() < best.ID().String()
}

// resolveByState falls back to zones covering the destination state when no
// range contains the code. The two leading postal code digits identify the
// state, so even codes absent from every range still resolve somewhere.
func (r PostalCodeResolver) resolveByState(state string, zones []*shipping.Zone) *shipping.Zone {
	var best *shipping.Zone

	for _, zone := range zones {
		if !zone.IsActive() || !zone.Carrier().IsActive() {
			continue
		}

		if !zone.MatchesState(state) {
			continue
		}

		if best == nil ||
			zone.Priority() < best.Priority() ||
			(zone.Priority() == best.Priority() && zone.ID().String() < best.ID().String()) {
			best = zone
		}
	}

	return best
}
