package services

import (
	"fmt"

	"freight/internal/core/domain/model/shipping"
)

// FreeShippingPolicy is a domain service that selects the seller config
// governing a shipment and applies its free shipping rules to priced options.
//
// Config selection: among the applicable configs, the most specific one wins.
// A seller-scoped config always beats a marketplace-wide one, and within
// equal specificity the lowest priority value wins. Only the winning config
// is applied; rules never merge across configs.
//
// Rule evaluation order: the oversized guard first, then the cart value
// threshold, then free-shipping products, then free-shipping categories.
// The first matching rule zeroes every option; an oversized cart disables
// free shipping entirely and options stay paid.
type FreeShippingPolicy struct{}

// NewFreeShippingPolicy creates a new FreeShippingPolicy instance.
func NewFreeShippingPolicy() FreeShippingPolicy {
	return FreeShippingPolicy{}
}

// SelectConfig returns the governing config among the candidates, or nil when
// none applies. Candidates are expected pre-filtered by the repository to the
// shipment's dimensions; inactive or non-matching configs are skipped anyway.
func (p FreeShippingPolicy) SelectConfig(
	candidates []*shipping.SellerConfig,
	sellerID string,
	zone ResolvedZone,
) *shipping.SellerConfig {
	var best *shipping.SellerConfig

	for _, cfg := range candidates {
		if cfg.Validate() != nil {
			continue
		}

		if !cfg.AppliesTo(sellerID, zone.CarrierID, zone.ZoneID) {
			continue
		}

		if best == nil ||
			cfg.Specificity() > best.Specificity() ||
			(cfg.Specificity() == best.Specificity() && cfg.Priority() < best.Priority()) {
			best = cfg
		}
	}

	return best
}

// Apply evaluates the config's free shipping rules against the shipment and
// zeroes every option when one matches. The pre-discount price is kept as
// DisplayPrice so storefronts can show the savings. A nil config leaves the
// options untouched.
func (p FreeShippingPolicy) Apply(
	cfg *shipping.SellerConfig,
	items []shipping.CartItem,
	cartValue float64,
	weightGrams float64,
	options []shipping.ShippingOption,
) []shipping.ShippingOption {
	if cfg == nil {
		return options
	}

	if cfg.ExceedsMaxWeight(weightGrams) {
		return options
	}

	reason, ok := p.matchReason(cfg, items, cartValue)
	if !ok {
		return options
	}

	for i := range options {
		options[i].DisplayPrice = options[i].Price
		options[i].Breakdown.FreeShippingDiscount = options[i].Price
		options[i].Price = 0
		options[i].IsFree = true
		options[i].FreeReason = reason
	}

	return options
}

func (p FreeShippingPolicy) matchReason(cfg *shipping.SellerConfig, items []shipping.CartItem, cartValue float64) (string, bool) {
	if threshold := cfg.FreeShippingThreshold(); threshold != nil && cartValue >= *threshold {
		return fmt.Sprintf("Free shipping over R$%.2f", *threshold), true
	}

	if productID, ok := p.firstMatch(items, cfg.FreeShippingProductIDs(), func(i shipping.CartItem) string { return i.ProductID }); ok {
		return fmt.Sprintf("Product %s ships free", productID), true
	}

	if categoryID, ok := p.firstMatch(items, cfg.FreeShippingCategoryIDs(), func(i shipping.CartItem) string { return i.CategoryID }); ok {
		return fmt.Sprintf("Category %s ships free", categoryID), true
	}

	return "", false
}

func (p FreeShippingPolicy) firstMatch(items []shipping.CartItem, ids []string, key func(shipping.CartItem) string) (string, bool) {
	if len(ids) == 0 {
		return "", false
	}

	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}

	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := allowed[k]; ok {
			return k, true
		}
	}

	return "", false
}
