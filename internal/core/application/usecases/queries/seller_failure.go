package queries

// FailureKind classifies why one seller's shipment could not be quoted.
// Failures are scoped to their seller; the rest of the cart still quotes.
type FailureKind string

const (
	// FailureUnservicedPostalCode: no carrier zone covers the destination.
	FailureUnservicedPostalCode FailureKind = "unserviced_postal_code"

	// FailureRateNotFound: the resolved carrier publishes no rate for the lane.
	FailureRateNotFound FailureKind = "rate_not_found"

	// FailureConfigFetch: a repository read failed while quoting the seller.
	FailureConfigFetch FailureKind = "config_fetch_failed"

	// FailureTimeout: the seller's computation missed the request deadline.
	FailureTimeout FailureKind = "timeout"
)

// SellerFailure reports a seller whose shipment could not be quoted and why.
type SellerFailure struct {
	SellerID string      `json:"seller_id"`
	Kind     FailureKind `json:"kind"`
	Message  string      `json:"message"`
}
