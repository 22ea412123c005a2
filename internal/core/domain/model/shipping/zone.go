package shipping

import (
	"errors"
	"sort"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrPostalCodeRangeIsNotConstructed indicates that the PostalCodeRange was not
// properly initialized through the NewPostalCodeRange constructor function.
var ErrPostalCodeRangeIsNotConstructed = errors.New("PostalCodeRange must be created via NewPostalCodeRange constructor")

// ErrZoneIsNotConstructed indicates that the Zone was not properly
// initialized through the NewZone constructor function.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// ErrOverlappingCoverageRanges is returned when two postal code ranges of the
// same zone intersect. Overlaps inside one zone make the narrowest-range
// tie-break ambiguous, so such zones are rejected at construction time.
var ErrOverlappingCoverageRanges = errs.NewValueIsInvalidError("zone coverage ranges must not overlap")

// PostalCodeRange is an inclusive interval of numeric postal codes covered by
// a zone, e.g. [01000000, 05999999] for the city of São Paulo.
type PostalCodeRange struct {
	from int
	to   int

	guard kernel.ConstructorGuard
}

// NewPostalCodeRange creates a validated inclusive postal code interval.
func NewPostalCodeRange(from, to int) (PostalCodeRange, error) {
	if from < 0 {
		return PostalCodeRange{}, errs.NewValueIsOutOfRangeError("postalCodeRange.from", from, 0, 99999999)
	}

	if to < from {
		return PostalCodeRange{}, errs.NewValueIsOutOfRangeError("postalCodeRange.to", to, from, 99999999)
	}

	return PostalCodeRange{from: from, to: to, guard: kernel.NewConstructorGuard()}, nil
}

// Validate checks if the PostalCodeRange was properly constructed using the constructor.
func (r PostalCodeRange) Validate() error {
	return r.guard.Validate(ErrPostalCodeRangeIsNotConstructed)
}

// From returns the inclusive lower bound.
func (r PostalCodeRange) From() int {
	return r.from
}

// To returns the inclusive upper bound.
func (r PostalCodeRange) To() int {
	return r.to
}

// Contains reports whether the numeric postal code falls inside the interval.
func (r PostalCodeRange) Contains(code int) bool {
	return code >= r.from && code <= r.to
}

// Width returns the number of postal codes the interval spans. Narrower
// intervals represent more specific coverage.
func (r PostalCodeRange) Width() int {
	return r.to - r.from + 1
}

// Zone is a named coverage area of a carrier. A zone matches a destination
// either through its postal code ranges or, when it has no ranges, through
// its two-letter state code.
type Zone struct {
	id       kernel.UUID
	name     string
	carrier  Carrier
	state    string
	ranges   []PostalCodeRange
	priority int
	active   bool

	guard kernel.ConstructorGuard
}

// NewZone creates a validated Zone.
//
// Ranges may be empty: such zones cover a whole state and only participate in
// the state-level fallback. Non-empty ranges must not overlap each other.
// Lower priority values win when several zones cover the same postal code.
func NewZone(
	id kernel.UUID,
	name string,
	carrier Carrier,
	state string,
	ranges []PostalCodeRange,
	priority int,
	active bool,
) (*Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if err := carrier.Validate(); err != nil {
		return nil, err
	}

	validationErrors := make([]error, 0)

	if name == "" {
		validationErrors = append(validationErrors, errs.NewValueIsRequiredError("zone name"))
	}

	if state != "" && len(state) != 2 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("zone state must be a two-letter code"))
	}

	if priority < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsOutOfRangeError("zone priority", priority, 0, int(^uint(0)>>1)))
	}

	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			validationErrors = append(validationErrors, err)
		}
	}

	if len(validationErrors) > 0 {
		return nil, errors.Join(validationErrors...)
	}

	sorted := make([]PostalCodeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].from < sorted[j].from })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].from <= sorted[i-1].to {
			return nil, ErrOverlappingCoverageRanges
		}
	}

	return &Zone{
		id:       id,
		name:     name,
		carrier:  carrier,
		state:    state,
		ranges:   sorted,
		priority: priority,
		active:   active,
		guard:    kernel.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Zone was properly constructed using the constructor.
func (z *Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// ID returns the zone identifier.
func (z *Zone) ID() kernel.UUID {
	return z.id
}

// Name returns the zone display name.
func (z *Zone) Name() string {
	return z.name
}

// Carrier returns the carrier this zone belongs to.
func (z *Zone) Carrier() Carrier {
	return z.carrier
}

// State returns the two-letter state code the zone is associated with, or an
// empty string when none is set.
func (z *Zone) State() string {
	return z.state
}

// Ranges returns the zone's postal code intervals ordered by lower bound.
func (z *Zone) Ranges() []PostalCodeRange {
	out := make([]PostalCodeRange, len(z.ranges))
	copy(out, z.ranges)
	return out
}

// Priority returns the zone's selection priority; lower values win.
func (z *Zone) Priority() int {
	return z.priority
}

// IsActive reports whether the zone participates in resolution.
func (z *Zone) IsActive() bool {
	return z.active
}

// Covers reports whether any of the zone's ranges contains the numeric postal
// code. Zones without ranges never match by code; they only match by state.
func (z *Zone) Covers(code int) bool {
	_, ok := z.CoveringRange(code)
	return ok
}

// CoveringRange returns the range containing the numeric postal code. Ranges
// inside a zone do not overlap, so at most one range can match.
func (z *Zone) CoveringRange(code int) (PostalCodeRange, bool) {
	for _, r := range z.ranges {
		if r.Contains(code) {
			return r, true
		}
	}
	return PostalCodeRange{}, false
}

// MatchesState reports whether the zone covers the given two-letter state
// code. Used as a fallback when no zone range contains the destination.
func (z *Zone) MatchesState(state string) bool {
	return state != "" && z.state == state
}
