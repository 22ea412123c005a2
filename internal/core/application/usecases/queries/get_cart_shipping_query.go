package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
	"freight/internal/pkg/errs"
)

var (
	ErrGetCartShippingQueryIsNotConstructed = errors.New(
		"GetCartShippingQuery must be created via NewGetCartShippingQuery constructor",
	)
)

// GetCartShippingQuery quotes shipping for a whole multi-seller cart going to
// one destination. Items are grouped by seller and each group is quoted as an
// independent shipment.
//
// selectedOptions optionally pins the option a customer already picked per
// seller (seller ID to option ID); pinned options drive the cart summary
// instead of the cheapest ones.
//
// Example:
//
//	query, err := NewGetCartShippingQuery("01310-100", items, nil)
//	if err != nil {
//	    return err
//	}
//
//	response, err := handler.Handle(ctx, query)
type GetCartShippingQuery struct {
	postalCode      string
	items           []shipping.CartItem
	selectedOptions map[string]string

	guard kernel.ConstructorGuard
}

// NewGetCartShippingQuery creates a validated cart shipping query.
// The postal code is kept raw here; parsing happens in the handler so a
// malformed code surfaces as a request-level failure, not a panic path.
func NewGetCartShippingQuery(
	postalCode string,
	items []shipping.CartItem,
	selectedOptions map[string]string,
) (GetCartShippingQuery, error) {
	if postalCode == "" {
		return GetCartShippingQuery{}, errs.NewValueIsRequiredError("postalCode")
	}

	if len(items) == 0 {
		return GetCartShippingQuery{}, errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return GetCartShippingQuery{}, err
		}
	}

	selected := make(map[string]string, len(selectedOptions))
	for sellerID, optionID := range selectedOptions {
		selected[sellerID] = optionID
	}

	return GetCartShippingQuery{
		postalCode:      postalCode,
		items:           items,
		selectedOptions: selected,
		guard:           kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartShippingQuery) Validate() error {
	return q.guard.Validate(ErrGetCartShippingQueryIsNotConstructed)
}

// PostalCode returns the raw destination postal code.
func (q GetCartShippingQuery) PostalCode() string {
	return q.postalCode
}

// Items returns the cart items across all sellers.
func (q GetCartShippingQuery) Items() []shipping.CartItem {
	return q.items
}

// SelectedOption returns the option the customer pinned for a seller, if any.
func (q GetCartShippingQuery) SelectedOption(sellerID string) (string, bool) {
	optionID, ok := q.selectedOptions[sellerID]
	return optionID, ok
}

// CartSummary aggregates the quoted cart for checkout display.
type CartSummary struct {
	TotalShippingCost        float64 `json:"total_shipping_cost"`
	MaxDeliveryDays          int     `json:"max_delivery_days"`
	HasFreeShippingAvailable bool    `json:"has_free_shipping_available"`
	PotentialSavings         float64 `json:"potential_savings"`
}

// GetCartShippingQueryResponse is the read model of a cart-wide quote.
// Success is false only when every seller failed; partial failures keep the
// quoted sellers and list the failed ones.
type GetCartShippingQueryResponse struct {
	Success  bool                             `json:"success"`
	Quotes   []GetSellerShippingQueryResponse `json:"quotes"`
	Failures []SellerFailure                  `json:"failures,omitempty"`
	Summary  CartSummary                      `json:"summary"`
}
