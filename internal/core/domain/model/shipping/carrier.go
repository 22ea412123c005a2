package shipping

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrCarrierIsNotConstructed indicates that the Carrier was not properly
// initialized through the NewCarrier constructor function.
var ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")

// CarrierType distinguishes how a carrier's prices are obtained.
type CarrierType string

const (
	// CarrierTypeTableBased marks carriers priced from locally administered
	// rate tables. This is the only type the engine computes prices for.
	CarrierTypeTableBased CarrierType = "table"

	// CarrierTypeAPIIntegrated marks carriers whose prices come from an
	// external quoting API. Their rows still resolve zones; pricing is
	// delegated to the integration layer.
	CarrierTypeAPIIntegrated CarrierType = "api"
)

// CarrierTypeFromString parses a carrier type from its storage representation.
func CarrierTypeFromString(s string) (CarrierType, error) {
	switch CarrierType(s) {
	case CarrierTypeTableBased, CarrierTypeAPIIntegrated:
		return CarrierType(s), nil
	default:
		return "", errs.NewValueIsInvalidError("carrierType")
	}
}

// Carrier is the transport company a zone belongs to. It is a read-only
// entity administered outside the engine.
type Carrier struct {
	id     kernel.UUID
	name   string
	ctype  CarrierType
	active bool

	guard kernel.ConstructorGuard
}

// NewCarrier creates a validated Carrier.
// The name must not be empty and the type must be a known CarrierType.
func NewCarrier(id kernel.UUID, name string, ctype CarrierType, active bool) (Carrier, error) {
	if err := id.Validate(); err != nil {
		return Carrier{}, err
	}

	if name == "" {
		return Carrier{}, errs.NewValueIsRequiredError("carrier name")
	}

	if ctype != CarrierTypeTableBased && ctype != CarrierTypeAPIIntegrated {
		return Carrier{}, errs.NewValueIsInvalidError("carrierType")
	}

	return Carrier{
		id:     id,
		name:   name,
		ctype:  ctype,
		active: active,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Carrier was properly constructed using the constructor.
func (c Carrier) Validate() error {
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// ID returns the carrier identifier.
func (c Carrier) ID() kernel.UUID {
	return c.id
}

// Name returns the carrier display name.
func (c Carrier) Name() string {
	return c.name
}

// Type returns how the carrier is priced.
func (c Carrier) Type() CarrierType {
	return c.ctype
}

// IsActive reports whether the carrier currently serves shipments.
func (c Carrier) IsActive() bool {
	return c.active
}
