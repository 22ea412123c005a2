package services

import (
	"sort"

	"freight/internal/core/domain/model/shipping"
)

// ModalityAggregator is a domain service that turns raw priced options into
// the list presented to customers.
//
// Ordering: free options first, then by price ascending, then by the lower
// delivery bound, then by ID for deterministic output. When a carrier ends up
// with several options of the same modality, only the cheapest survives.
type ModalityAggregator struct{}

// NewModalityAggregator creates a new ModalityAggregator instance.
func NewModalityAggregator() ModalityAggregator {
	return ModalityAggregator{}
}

// Aggregate sorts and deduplicates the options. The input slice is not
// modified.
func (a ModalityAggregator) Aggregate(options []shipping.ShippingOption) []shipping.ShippingOption {
	sorted := make([]shipping.ShippingOption, len(options))
	copy(sorted, options)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsFree != sorted[j].IsFree {
			return sorted[i].IsFree
		}
		if sorted[i].Price != sorted[j].Price {
			return sorted[i].Price < sorted[j].Price
		}
		if sorted[i].DeliveryDaysMin != sorted[j].DeliveryDaysMin {
			return sorted[i].DeliveryDaysMin < sorted[j].DeliveryDaysMin
		}
		return sorted[i].ID < sorted[j].ID
	})

	type dedupeKey struct {
		modality  shipping.Modality
		carrierID string
	}

	seen := make(map[dedupeKey]struct{}, len(sorted))
	out := make([]shipping.ShippingOption, 0, len(sorted))

	for _, opt := range sorted {
		key := dedupeKey{modality: opt.Modality, carrierID: opt.CarrierID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, opt)
	}

	return out
}
