// Package services provides the domain services of the freight engine:
// the pure computation steps a seller quote is assembled from.
//
// The package includes:
//   - PostalCodeResolver: matches a destination postal code to a carrier zone
//   - WeightCalculator: derives the billable weight of a shipment
//   - TierPriceEngine: prices carrier rates into shipping options
//   - FreeShippingPolicy: resolves seller configs and zeroes qualifying options
//   - ModalityAggregator: orders and deduplicates the final option list
//
// All services are stateless and operate on data passed in by the application
// layer; fetching from repositories and caching happen outside the domain.
package services
