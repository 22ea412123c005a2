package services

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/core/domain/model/shipping"
)

// ErrRateNotFound is returned when a carrier publishes no active rate for the
// resolved zone, so the lane cannot be priced at all.
var ErrRateNotFound = errors.New("no rate found for zone and carrier")

// TierPriceEngine is a domain service that prices a carrier's rates into
// shipping options for a concrete shipment.
//
// Price composition per rate:
//   - The weight tier table gives the base price; weights beyond the last
//     tier pay per started kilogram of excess
//   - Insurance adds the greater of a percentage of the base price and a
//     configured floor; the declared value fee does the same against the
//     cart value
//   - The subtotal is rounded to cents, then the seller markup percentage is
//     applied and the result rounded again
type TierPriceEngine struct{}

// NewTierPriceEngine creates a new TierPriceEngine instance.
func NewTierPriceEngine() TierPriceEngine {
	return TierPriceEngine{}
}

// PriceOptions computes one shipping option per active rate. The zone names
// label the options; weightGrams is the billable weight and markupPct the
// seller markup applied on top of every price. Returns ErrRateNotFound when
// no active rate is available.
func (e TierPriceEngine) PriceOptions(
	zone ResolvedZone,
	rates []*shipping.Rate,
	weightGrams float64,
	cartValue float64,
	markupPct float64,
) ([]shipping.ShippingOption, error) {
	options := make([]shipping.ShippingOption, 0, len(rates))

	for _, rate := range rates {
		if err := rate.Validate(); err != nil {
			return nil, err
		}

		if !rate.IsActive() {
			continue
		}

		options = append(options, e.priceRate(zone, rate, weightGrams, cartValue, markupPct))
	}

	if len(options) == 0 {
		return nil, ErrRateNotFound
	}

	return options, nil
}

func (e TierPriceEngine) priceRate(
	zone ResolvedZone,
	rate *shipping.Rate,
	weightGrams float64,
	cartValue float64,
	markupPct float64,
) shipping.ShippingOption {
	base := rate.BasePrice(weightGrams)
	insurance := rate.Fees().InsuranceFee(base)
	declared := rate.Fees().DeclaredValueFee(cartValue)

	subtotal := Round2(base + insurance + declared)
	final := Round2(subtotal * (1 + markupPct/100))

	modality := rate.Modality()

	return shipping.ShippingOption{
		ID:              fmt.Sprintf("%s-%s", zone.CarrierID.String(), rate.ID().String()),
		Name:            optionName(modality, rate.DeliveryDaysMin(), rate.DeliveryDaysMax()),
		Carrier:         zone.CarrierName,
		CarrierID:       zone.CarrierID.String(),
		Modality:        modality,
		Price:           final,
		DisplayPrice:    final,
		DeliveryDaysMin: rate.DeliveryDaysMin(),
		DeliveryDaysMax: rate.DeliveryDaysMax(),
		Breakdown: shipping.PriceBreakdown{
			BasePrice:        Round2(base),
			InsuranceFee:     Round2(insurance),
			DeclaredValueFee: Round2(declared),
			Markup:           Round2(final - subtotal),
		},
	}
}

// optionName labels an option from its modality and delivery window.
func optionName(modality shipping.Modality, daysMin, daysMax int) string {
	switch {
	case daysMin == 0:
		return fmt.Sprintf("%s - Same-day delivery", modality)
	case daysMin == 1 && daysMax == 1:
		return fmt.Sprintf("%s - Next-day delivery", modality)
	case daysMin == daysMax:
		return fmt.Sprintf("%s - Delivery in %d business days", modality, daysMin)
	default:
		return fmt.Sprintf("%s - Delivery in %d to %d business days", modality, daysMin, daysMax)
	}
}

// Round2 rounds a monetary amount to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
