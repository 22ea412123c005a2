package shipping

import (
	"errors"
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrSellerConfigIsNotConstructed indicates that the SellerConfig was not
// properly initialized through the NewSellerConfig constructor function.
var ErrSellerConfigIsNotConstructed = errors.New("SellerConfig must be created via NewSellerConfig constructor")

// SellerConfig carries the commercial overrides a marketplace operator or an
// individual seller applies on top of carrier prices: a markup percentage,
// free shipping rules and an oversized-cart weight limit.
//
// The sellerID, carrierID and zoneID dimensions are optional. A config with
// all three unset is a marketplace-wide default; each set dimension narrows
// where the config applies and raises its specificity.
type SellerConfig struct {
	id                      kernel.UUID
	sellerID                *string
	carrierID               *kernel.UUID
	zoneID                  *kernel.UUID
	markupPct               float64
	freeShippingThreshold   *float64
	freeShippingProductIDs  []string
	freeShippingCategoryIDs []string
	maxWeightKg             float64
	priority                int
	active                  bool

	guard kernel.ConstructorGuard
}

// NewSellerConfig creates a validated SellerConfig.
//
// markupPct and maxWeightKg must be non-negative; maxWeightKg zero means no
// weight limit. The threshold, when set, must be non-negative. Lower priority
// values win among configs of equal specificity.
func NewSellerConfig(
	id kernel.UUID,
	sellerID *string,
	carrierID *kernel.UUID,
	zoneID *kernel.UUID,
	markupPct float64,
	freeShippingThreshold *float64,
	freeShippingProductIDs []string,
	freeShippingCategoryIDs []string,
	maxWeightKg float64,
	priority int,
	active bool,
) (*SellerConfig, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return nil, err
		}
	}

	if zoneID != nil {
		if err := zoneID.Validate(); err != nil {
			return nil, err
		}
	}

	validationErrors := make([]error, 0)

	if sellerID != nil && *sellerID == "" {
		validationErrors = append(validationErrors, errs.NewValueIsRequiredError("config sellerId must not be empty when set"))
	}

	if markupPct < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("config markup percentage must not be negative"))
	}

	if freeShippingThreshold != nil && *freeShippingThreshold < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("config free shipping threshold must not be negative"))
	}

	if maxWeightKg < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("config max weight must not be negative"))
	}

	if priority < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsOutOfRangeError("config priority", priority, 0, math.MaxInt32))
	}

	if len(validationErrors) > 0 {
		return nil, errors.Join(validationErrors...)
	}

	cfg := &SellerConfig{
		id:          id,
		markupPct:   markupPct,
		maxWeightKg: maxWeightKg,
		priority:    priority,
		active:      active,
		guard:       kernel.NewConstructorGuard(),
	}

	if sellerID != nil {
		v := *sellerID
		cfg.sellerID = &v
	}
	if carrierID != nil {
		v := *carrierID
		cfg.carrierID = &v
	}
	if zoneID != nil {
		v := *zoneID
		cfg.zoneID = &v
	}
	if freeShippingThreshold != nil {
		v := *freeShippingThreshold
		cfg.freeShippingThreshold = &v
	}
	cfg.freeShippingProductIDs = append([]string(nil), freeShippingProductIDs...)
	cfg.freeShippingCategoryIDs = append([]string(nil), freeShippingCategoryIDs...)

	return cfg, nil
}

// Validate checks if the SellerConfig was properly constructed using the constructor.
func (c *SellerConfig) Validate() error {
	return c.guard.Validate(ErrSellerConfigIsNotConstructed)
}

// ID returns the config identifier.
func (c *SellerConfig) ID() kernel.UUID {
	return c.id
}

// SellerID returns the seller the config is scoped to, or nil for
// marketplace-wide configs.
func (c *SellerConfig) SellerID() *string {
	if c.sellerID == nil {
		return nil
	}
	v := *c.sellerID
	return &v
}

// CarrierID returns the carrier the config is scoped to, or nil.
func (c *SellerConfig) CarrierID() *kernel.UUID {
	if c.carrierID == nil {
		return nil
	}
	v := *c.carrierID
	return &v
}

// ZoneID returns the zone the config is scoped to, or nil.
func (c *SellerConfig) ZoneID() *kernel.UUID {
	if c.zoneID == nil {
		return nil
	}
	v := *c.zoneID
	return &v
}

// MarkupPct returns the percentage added to every computed price.
func (c *SellerConfig) MarkupPct() float64 {
	return c.markupPct
}

// FreeShippingThreshold returns the cart value at and above which shipping is
// free, or nil when no threshold rule is configured.
func (c *SellerConfig) FreeShippingThreshold() *float64 {
	if c.freeShippingThreshold == nil {
		return nil
	}
	v := *c.freeShippingThreshold
	return &v
}

// FreeShippingProductIDs returns the products that grant free shipping to the
// whole cart when present.
func (c *SellerConfig) FreeShippingProductIDs() []string {
	return append([]string(nil), c.freeShippingProductIDs...)
}

// FreeShippingCategoryIDs returns the categories that grant free shipping to
// the whole cart when one of their products is present.
func (c *SellerConfig) FreeShippingCategoryIDs() []string {
	return append([]string(nil), c.freeShippingCategoryIDs...)
}

// MaxWeightKg returns the oversized-cart limit in kilograms; zero means no limit.
func (c *SellerConfig) MaxWeightKg() float64 {
	return c.maxWeightKg
}

// Priority returns the tie-break priority among configs of equal specificity;
// lower values win.
func (c *SellerConfig) Priority() int {
	return c.priority
}

// IsActive reports whether the config participates in resolution.
func (c *SellerConfig) IsActive() bool {
	return c.active
}

// IsGlobal reports whether the config applies marketplace-wide.
func (c *SellerConfig) IsGlobal() bool {
	return c.sellerID == nil
}

// AppliesTo reports whether the config matches the seller, carrier and zone
// of a shipment. Unset dimensions match everything.
func (c *SellerConfig) AppliesTo(sellerID string, carrierID, zoneID kernel.UUID) bool {
	if !c.active {
		return false
	}
	if c.sellerID != nil && *c.sellerID != sellerID {
		return false
	}
	if c.carrierID != nil && !c.carrierID.IsEqual(carrierID) {
		return false
	}
	if c.zoneID != nil && !c.zoneID.IsEqual(zoneID) {
		return false
	}
	return true
}

// Specificity scores how narrowly the config is scoped. A set seller
// dimension outweighs carrier and zone combined, so seller-scoped configs
// always beat marketplace-wide ones regardless of their other dimensions.
func (c *SellerConfig) Specificity() int {
	score := 0
	if c.sellerID != nil {
		score += 4
	}
	if c.carrierID != nil {
		score++
	}
	if c.zoneID != nil {
		score++
	}
	return score
}

// ExceedsMaxWeight reports whether the billable weight in grams is over the
// config's oversized-cart limit. Configs without a limit never match.
func (c *SellerConfig) ExceedsMaxWeight(weightGrams float64) bool {
	return c.maxWeightKg > 0 && weightGrams > c.maxWeightKg*1000
}

// HasFreeShippingRules reports whether any free shipping rule is configured.
func (c *SellerConfig) HasFreeShippingRules() bool {
	return c.freeShippingThreshold != nil || len(c.freeShippingProductIDs) > 0 || len(c.freeShippingCategoryIDs) > 0
}
