package shipping

import (
	"errors"

	"freight/internal/pkg/errs"
)

// CartItem is one line of the cart being quoted. It is external per-request
// input, so unlike the catalog entities it is a plain structure validated as
// a whole rather than guarded by a constructor.
//
// Weight and dimensions are optional: zero values fall back to the catalog
// defaults applied by the weight calculator.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	SellerID    string  `json:"seller_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	WeightGrams float64 `json:"weight_grams,omitempty"`
	CategoryID  string  `json:"category_id,omitempty"`
	HeightCm    float64 `json:"height_cm,omitempty"`
	WidthCm     float64 `json:"width_cm,omitempty"`
	LengthCm    float64 `json:"length_cm,omitempty"`
}

// Validate checks the item for values the engine cannot quote.
func (i CartItem) Validate() error {
	validationErrors := make([]error, 0)

	if i.ProductID == "" {
		validationErrors = append(validationErrors, errs.NewValueIsRequiredError("item productId"))
	}

	if i.SellerID == "" {
		validationErrors = append(validationErrors, errs.NewValueIsRequiredError("item sellerId"))
	}

	if i.Quantity < 1 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("item quantity must be at least 1"))
	}

	if i.UnitPrice < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("item unitPrice must not be negative"))
	}

	if i.WeightGrams < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("item weight must not be negative"))
	}

	if i.HeightCm < 0 || i.WidthCm < 0 || i.LengthCm < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsInvalidError("item dimensions must not be negative"))
	}

	if len(validationErrors) > 0 {
		return errors.Join(validationErrors...)
	}

	return nil
}

// Subtotal returns the line value, quantity times unit price.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
