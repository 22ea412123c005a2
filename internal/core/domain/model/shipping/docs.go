// Package shipping contains the domain model of the freight engine: coverage
// zones and their carriers, weight-tiered rates, seller shipping
// configurations, per-request cart items, computed shipping options, and
// cached quotes.
//
// Zone, Carrier, Rate and SellerConfig are entities owned by external
// administration tooling; the engine only reads them. They are validated into
// strongly-typed records at the repository boundary, so malformed rows fail
// fast instead of propagating undefined values downstream. CartItem is
// per-request input, ShippingOption is computed output, and Quote is the
// cache record tying the two together.
package shipping
