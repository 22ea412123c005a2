package queries

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/shipping"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// GetSellerShippingQueryHandler computes one seller's shipping options.
//
// Pipeline:
//  1. Serve from the quote cache when a fresh entry exists
//  2. Resolve the destination postal code to a carrier zone
//  3. Measure the shipment's billable weight
//  4. Select the governing seller config
//  5. Price the zone's rates with the config's markup
//  6. Apply free shipping rules and aggregate modalities
//  7. Store the result in the cache
//
// Cache read failures are swallowed: a broken cache backend degrades to
// recomputation, never to a failed quote. Cache writes behave the same.
type GetSellerShippingQueryHandler struct {
	zones   ports.ZoneRepository
	rates   ports.RateRepository
	configs ports.SellerConfigRepository
	cache   ports.QuoteCache
	ttl     time.Duration
	now     func() time.Time

	resolver   services.PostalCodeResolver
	calculator services.WeightCalculator
	pricer     services.TierPriceEngine
	policy     services.FreeShippingPolicy
	aggregator services.ModalityAggregator
}

// NewGetSellerShippingQueryHandler creates a handler wired to the given
// repositories. The cache may be nil, which disables caching; a
// non-positive ttl falls back to shipping.DefaultQuoteTTL.
func NewGetSellerShippingQueryHandler(
	zones ports.ZoneRepository,
	rates ports.RateRepository,
	configs ports.SellerConfigRepository,
	cache ports.QuoteCache,
	ttl time.Duration,
) (GetSellerShippingQueryHandler, error) {
	if zones == nil {
		return GetSellerShippingQueryHandler{}, fmt.Errorf("zone repository is required")
	}
	if rates == nil {
		return GetSellerShippingQueryHandler{}, fmt.Errorf("rate repository is required")
	}
	if configs == nil {
		return GetSellerShippingQueryHandler{}, fmt.Errorf("seller config repository is required")
	}

	if ttl <= 0 {
		ttl = shipping.DefaultQuoteTTL
	}

	return GetSellerShippingQueryHandler{
		zones:      zones,
		rates:      rates,
		configs:    configs,
		cache:      cache,
		ttl:        ttl,
		now:        time.Now,
		resolver:   services.NewPostalCodeResolver(),
		calculator: services.NewWeightCalculator(),
		pricer:     services.NewTierPriceEngine(),
		policy:     services.NewFreeShippingPolicy(),
		aggregator: services.NewModalityAggregator(),
	}, nil
}

// Handle computes the seller's shipping options.
//
// Errors preserve their domain sentinels: services.ErrUnservicedPostalCode
// when no zone covers the destination, services.ErrRateNotFound when the
// resolved carrier publishes no rate, and wrapped repository errors
// otherwise. The caller classifies them into per-seller failures.
func (h GetSellerShippingQueryHandler) Handle(
	ctx context.Context,
	query GetSellerShippingQuery,
) (GetSellerShippingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSellerShippingQueryResponse{}, err
	}

	fingerprint := shipping.ItemsFingerprint(query.Items())
	cacheKey := shipping.QuoteCacheKey(query.PostalCode().String(), query.SellerID(), fingerprint)

	if cached := h.fromCache(ctx, cacheKey); cached != nil {
		return GetSellerShippingQueryResponse{
			SellerID:  query.SellerID(),
			Options:   cached.Options,
			FromCache: true,
		}, nil
	}

	zones, err := h.zones.GetActiveZones(ctx)
	if err != nil {
		return GetSellerShippingQueryResponse{}, fmt.Errorf("fetching zones: %w", err)
	}

	resolved, err := h.resolver.Resolve(query.PostalCode(), zones)
	if err != nil {
		return GetSellerShippingQueryResponse{}, err
	}

	measurement := h.calculator.Measure(query.Items())

	candidates, err := h.configs.GetCandidateConfigs(ctx, query.SellerID(), resolved.CarrierID, resolved.ZoneID)
	if err != nil {
		return GetSellerShippingQueryResponse{}, fmt.Errorf("fetching seller configs: %w", err)
	}

	config := h.policy.SelectConfig(candidates, query.SellerID(), resolved)

	markupPct := 0.0
	if config != nil {
		markupPct = config.MarkupPct()
	}

	rates, err := h.rates.GetActiveRates(ctx, resolved.ZoneID, resolved.CarrierID)
	if err != nil {
		return GetSellerShippingQueryResponse{}, fmt.Errorf("fetching rates: %w", err)
	}

	options, err := h.pricer.PriceOptions(resolved, rates, measurement.BillableWeightGrams, measurement.CartValue, markupPct)
	if err != nil {
		return GetSellerShippingQueryResponse{}, err
	}

	options = h.policy.Apply(config, query.Items(), measurement.CartValue, measurement.BillableWeightGrams, options)
	options = h.aggregator.Aggregate(options)

	h.toCache(ctx, cacheKey, query, fingerprint, options)

	return GetSellerShippingQueryResponse{
		SellerID: query.SellerID(),
		Options:  options,
	}, nil
}

func (h GetSellerShippingQueryHandler) fromCache(ctx context.Context, key string) *shipping.Quote {
	if h.cache == nil {
		return nil
	}

	quote, err := h.cache.Get(ctx, key)
	if err != nil || quote == nil {
		return nil
	}

	if quote.Expired(h.now()) {
		return nil
	}

	return quote
}

func (h GetSellerShippingQueryHandler) toCache(
	ctx context.Context,
	key string,
	query GetSellerShippingQuery,
	fingerprint string,
	options []shipping.ShippingOption,
) {
	if h.cache == nil {
		return
	}

	quote := shipping.NewQuote(key, query.SellerID(), query.PostalCode().String(), fingerprint, options, h.now(), h.ttl)
	_ = h.cache.Set(ctx, &quote)
}
