package shipping

import (
	"errors"
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrWeightTierIsNotConstructed indicates that the WeightTier was not properly
// initialized through the NewWeightTier constructor function.
var ErrWeightTierIsNotConstructed = errors.New("WeightTier must be created via NewWeightTier constructor")

// ErrRateIsNotConstructed indicates that the Rate was not properly
// initialized through the NewRate constructor function.
var ErrRateIsNotConstructed = errors.New("Rate must be created via NewRate constructor")

// ErrWeightTiersNotContiguous is returned when a rate's weight tiers leave a
// gap or overlap. Each tier must start exactly one gram after the previous
// tier ends, otherwise some billable weight would price ambiguously or not
// at all.
var ErrWeightTiersNotContiguous = errs.NewValueIsInvalidError("rate weight tiers must be contiguous and non-overlapping")

// Modality is the service-level label of a shipping option.
type Modality string

const (
	ModalityExpress  Modality = "Express"
	ModalityStandard Modality = "Standard"
	ModalityEconomic Modality = "Economic"
)

// ModalityForPriority maps a rate's priority to its modality label.
// Priority 1 is the fastest service; unknown priorities fall back to Standard.
func ModalityForPriority(priority int) Modality {
	switch priority {
	case 1:
		return ModalityExpress
	case 2:
		return ModalityStandard
	case 3:
		return ModalityEconomic
	default:
		return ModalityStandard
	}
}

// WeightTier is one step of a rate's weight-based price table: an inclusive
// gram interval and its flat price.
type WeightTier struct {
	fromGrams int
	toGrams   int
	price     float64

	guard kernel.ConstructorGuard
}

// NewWeightTier creates a validated WeightTier.
func NewWeightTier(fromGrams, toGrams int, price float64) (WeightTier, error) {
	if fromGrams < 0 {
		return WeightTier{}, errs.NewValueIsOutOfRangeError("weightTier.fromGrams", fromGrams, 0, math.MaxInt32)
	}

	if toGrams < fromGrams {
		return WeightTier{}, errs.NewValueIsOutOfRangeError("weightTier.toGrams", toGrams, fromGrams, math.MaxInt32)
	}

	if price < 0 {
		return WeightTier{}, errs.NewValueIsInvalidError("weightTier price must not be negative")
	}

	return WeightTier{fromGrams: fromGrams, toGrams: toGrams, price: price, guard: kernel.NewConstructorGuard()}, nil
}

// Validate checks if the WeightTier was properly constructed using the constructor.
func (t WeightTier) Validate() error {
	return t.guard.Validate(ErrWeightTierIsNotConstructed)
}

// FromGrams returns the inclusive lower bound of the tier in grams.
func (t WeightTier) FromGrams() int {
	return t.fromGrams
}

// ToGrams returns the inclusive upper bound of the tier in grams.
func (t WeightTier) ToGrams() int {
	return t.toGrams
}

// Price returns the flat price charged for weights inside the tier.
func (t WeightTier) Price() float64 {
	return t.price
}

// Contains reports whether the billable weight falls inside the tier.
func (t WeightTier) Contains(weightGrams float64) bool {
	return weightGrams >= float64(t.fromGrams) && weightGrams <= float64(t.toGrams)
}

// AdditionalFees carries the percentage-or-minimum fee parameters of a rate.
// Insurance charges a percentage of the shipping base price, declared value a
// percentage of the cart value; each is floored at a configured minimum.
type AdditionalFees struct {
	insurancePct     float64
	insuranceMin     float64
	declaredValuePct float64
	declaredValueMin float64

	guard kernel.ConstructorGuard
}

// NewAdditionalFees creates validated fee parameters. All values must be
// non-negative; zeros disable the corresponding fee component.
func NewAdditionalFees(insurancePct, insuranceMin, declaredValuePct, declaredValueMin float64) (AdditionalFees, error) {
	validationErrors := make([]error, 0)

	if insurancePct < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("insurance percentage must not be negative"))
	}
	if insuranceMin < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("insurance minimum must not be negative"))
	}
	if declaredValuePct < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("declared value percentage must not be negative"))
	}
	if declaredValueMin < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("declared value minimum must not be negative"))
	}

	if len(validationErrors) > 0 {
		return AdditionalFees{}, errors.Join(validationErrors...)
	}

	return AdditionalFees{
		insurancePct:     insurancePct,
		insuranceMin:     insuranceMin,
		declaredValuePct: declaredValuePct,
		declaredValueMin: declaredValueMin,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// InsuranceFee returns the insurance charge for the given shipping base
// price: the configured percentage of the price, floored at the configured
// minimum.
func (f AdditionalFees) InsuranceFee(basePrice float64) float64 {
	return math.Max(basePrice*f.insurancePct/100, f.insuranceMin)
}

// DeclaredValueFee returns the declared value charge for the given cart
// value: the configured percentage of the value, floored at the configured
// minimum.
func (f AdditionalFees) DeclaredValueFee(cartValue float64) float64 {
	return math.Max(cartValue*f.declaredValuePct/100, f.declaredValueMin)
}

// InsurancePct returns the insurance percentage of the shipping base price.
func (f AdditionalFees) InsurancePct() float64 {
	return f.insurancePct
}

// InsuranceMin returns the insurance fee floor.
func (f AdditionalFees) InsuranceMin() float64 {
	return f.insuranceMin
}

// DeclaredValuePct returns the declared value percentage of the cart value.
func (f AdditionalFees) DeclaredValuePct() float64 {
	return f.declaredValuePct
}

// DeclaredValueMin returns the declared value fee floor.
func (f AdditionalFees) DeclaredValueMin() float64 {
	return f.declaredValueMin
}

// Rate is one priced service of a carrier within a zone: a weight tier table,
// an overage price for weights beyond the last tier, a delivery window, and
// the fee parameters applied on top of the tier price.
type Rate struct {
	id              kernel.UUID
	zoneID          kernel.UUID
	carrierID       kernel.UUID
	tiers           []WeightTier
	pricePerKg      float64
	priority        int
	deliveryDaysMin int
	deliveryDaysMax int
	fees            AdditionalFees
	active          bool

	guard kernel.ConstructorGuard
}

// NewRate creates a validated Rate.
//
// Tiers must be provided in ascending order and be contiguous: each tier
// starts exactly one gram after the previous one ends. The priority is
// 1-based and determines the modality label (1 Express, 2 Standard,
// 3 Economic).
func NewRate(
	id kernel.UUID,
	zoneID kernel.UUID,
	carrierID kernel.UUID,
	tiers []WeightTier,
	pricePerKg float64,
	priority int,
	deliveryDaysMin int,
	deliveryDaysMax int,
	fees AdditionalFees,
	active bool,
) (*Rate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	if err := fees.guard.Validate(errors.New("AdditionalFees must be created via NewAdditionalFees constructor")); err != nil {
		return nil, err
	}

	validationErrors := make([]error, 0)

	if len(tiers) == 0 {
		validationErrors = append(validationErrors, errs.NewValueIsRequiredError("rate weight tiers"))
	}

	for _, t := range tiers {
		if err := t.Validate(); err != nil {
			validationErrors = append(validationErrors, err)
		}
	}

	if pricePerKg < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("rate pricePerKg must not be negative"))
	}

	if priority < 1 {
		validationErrors = append(validationErrors, errs.NewValueIsOutOfRangeError("rate priority", priority, 1, math.MaxInt32))
	}

	if deliveryDaysMin < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("rate deliveryDaysMin must not be negative"))
	}

	if deliveryDaysMax < deliveryDaysMin {
		validationErrors = append(validationErrors, errs.NewValueIsOutOfRangeError("rate deliveryDaysMax", deliveryDaysMax, deliveryDaysMin, math.MaxInt32))
	}

	if len(validationErrors) > 0 {
		return nil, errors.Join(validationErrors...)
	}

	for i := 1; i < len(tiers); i++ {
		if tiers[i].fromGrams != tiers[i-1].toGrams+1 {
			return nil, ErrWeightTiersNotContiguous
		}
	}

	return &Rate{
		id:              id,
		zoneID:          zoneID,
		carrierID:       carrierID,
		tiers:           tiers,
		pricePerKg:      pricePerKg,
		priority:        priority,
		deliveryDaysMin: deliveryDaysMin,
		deliveryDaysMax: deliveryDaysMax,
		fees:            fees,
		active:          active,
		guard:           kernel.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Rate was properly constructed using the constructor.
func (r *Rate) Validate() error {
	return r.guard.Validate(ErrRateIsNotConstructed)
}

// ID returns the rate identifier.
func (r *Rate) ID() kernel.UUID {
	return r.id
}

// ZoneID returns the identifier of the zone the rate prices.
func (r *Rate) ZoneID() kernel.UUID {
	return r.zoneID
}

// CarrierID returns the identifier of the carrier operating the rate.
func (r *Rate) CarrierID() kernel.UUID {
	return r.carrierID
}

// Tiers returns the rate's weight tiers in ascending order.
func (r *Rate) Tiers() []WeightTier {
	out := make([]WeightTier, len(r.tiers))
	copy(out, r.tiers)
	return out
}

// PricePerKg returns the overage price charged per started kilogram beyond
// the last tier.
func (r *Rate) PricePerKg() float64 {
	return r.pricePerKg
}

// Priority returns the rate's 1-based service priority.
func (r *Rate) Priority() int {
	return r.priority
}

// DeliveryDaysMin returns the lower bound of the delivery window in business days.
func (r *Rate) DeliveryDaysMin() int {
	return r.deliveryDaysMin
}

// DeliveryDaysMax returns the upper bound of the delivery window in business days.
func (r *Rate) DeliveryDaysMax() int {
	return r.deliveryDaysMax
}

// Fees returns the rate's additional fee parameters.
func (r *Rate) Fees() AdditionalFees {
	return r.fees
}

// IsActive reports whether the rate participates in pricing.
func (r *Rate) IsActive() bool {
	return r.active
}

// Modality returns the service-level label derived from the rate's priority.
func (r *Rate) Modality() Modality {
	return ModalityForPriority(r.priority)
}

// TierFor returns the tier containing the billable weight, if any.
func (r *Rate) TierFor(weightGrams float64) (WeightTier, bool) {
	for _, t := range r.tiers {
		if t.Contains(weightGrams) {
			return t, true
		}
	}
	return WeightTier{}, false
}

// LastTier returns the heaviest tier of the table.
func (r *Rate) LastTier() WeightTier {
	return r.tiers[len(r.tiers)-1]
}

// BasePrice returns the unrounded tier price for the billable weight. Weights
// beyond the last tier pay the last tier's price plus pricePerKg for every
// started kilogram of excess, so the price is monotonically non-decreasing
// in weight.
func (r *Rate) BasePrice(weightGrams float64) float64 {
	if tier, ok := r.TierFor(weightGrams); ok {
		return tier.Price()
	}

	last := r.LastTier()
	if weightGrams < float64(last.FromGrams()) {
		// Below the first tier. Tables start at zero in practice, but a
		// misconfigured table must not price negatives.
		return r.tiers[0].Price()
	}

	excessKg := math.Ceil((weightGrams - float64(last.ToGrams())) / 1000)
	return last.Price() + r.pricePerKg*excessKg
}
