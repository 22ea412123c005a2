// Package queries contains the read operations of the freight engine.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
	"freight/internal/pkg/errs"
)

var (
	ErrGetSellerShippingQueryIsNotConstructed = errors.New(
		"GetSellerShippingQuery must be created via NewGetSellerShippingQuery constructor",
	)
)

// GetSellerShippingQuery computes the shipping options for one seller's
// shipment: the items of a single seller going to a single destination.
//
// Example:
//
//	postalCode, _ := kernel.NewPostalCode("01310-100")
//	query, err := NewGetSellerShippingQuery(postalCode, "seller-1", items)
//	if err != nil {
//	    return err
//	}
//
//	response, err := handler.Handle(ctx, query)
type GetSellerShippingQuery struct {
	postalCode kernel.PostalCode
	sellerID   string
	items      []shipping.CartItem

	guard kernel.ConstructorGuard
}

// NewGetSellerShippingQuery creates a validated seller shipping query.
// The item list must be non-empty and every item valid.
func NewGetSellerShippingQuery(
	postalCode kernel.PostalCode,
	sellerID string,
	items []shipping.CartItem,
) (GetSellerShippingQuery, error) {
	if err := postalCode.Validate(); err != nil {
		return GetSellerShippingQuery{}, err
	}

	if sellerID == "" {
		return GetSellerShippingQuery{}, errs.NewValueIsRequiredError("sellerId")
	}

	if len(items) == 0 {
		return GetSellerShippingQuery{}, errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return GetSellerShippingQuery{}, err
		}
	}

	return GetSellerShippingQuery{
		postalCode: postalCode,
		sellerID:   sellerID,
		items:      items,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSellerShippingQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerShippingQueryIsNotConstructed)
}

// PostalCode returns the destination postal code.
func (q GetSellerShippingQuery) PostalCode() kernel.PostalCode {
	return q.postalCode
}

// SellerID returns the seller whose shipment is being quoted.
func (q GetSellerShippingQuery) SellerID() string {
	return q.sellerID
}

// Items returns the seller's cart items.
func (q GetSellerShippingQuery) Items() []shipping.CartItem {
	return q.items
}

// GetSellerShippingQueryResponse is the read model of one seller's quote.
type GetSellerShippingQueryResponse struct {
	SellerID  string                    `json:"seller_id"`
	Options   []shipping.ShippingOption `json:"options"`
	FromCache bool                      `json:"from_cache"`
}
