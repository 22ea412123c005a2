package shipping

// PriceBreakdown itemizes how a shipping option's price was composed. All
// amounts are in the marketplace currency, rounded to cents.
type PriceBreakdown struct {
	BasePrice            float64 `json:"base_price"`
	Markup               float64 `json:"markup"`
	InsuranceFee         float64 `json:"insurance_fee"`
	DeclaredValueFee     float64 `json:"declared_value_fee"`
	FreeShippingDiscount float64 `json:"free_shipping_discount"`
}

// ShippingOption is one quotable service for a seller's shipment: a carrier
// modality with its price and delivery window. Options are computed output
// serialized to clients and to the quote cache, so fields are exported.
//
// When a free shipping rule zeroes the price, DisplayPrice keeps the value
// the customer would have paid, so storefronts can render the strikethrough
// savings next to the free badge.
type ShippingOption struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Carrier         string         `json:"carrier"`
	CarrierID       string         `json:"carrier_id"`
	Modality        Modality       `json:"modality"`
	Price           float64        `json:"price"`
	DisplayPrice    float64        `json:"display_price"`
	DeliveryDaysMin int            `json:"delivery_days_min"`
	DeliveryDaysMax int            `json:"delivery_days_max"`
	IsFree          bool           `json:"is_free"`
	FreeReason      string         `json:"free_reason,omitempty"`
	Breakdown       PriceBreakdown `json:"breakdown"`
}

// CheapestOption returns the lowest-priced option, or nil for an empty list.
// Free options price at zero and therefore win automatically.
func CheapestOption(options []ShippingOption) *ShippingOption {
	var best *ShippingOption
	for i := range options {
		if best == nil || options[i].Price < best.Price {
			best = &options[i]
		}
	}
	return best
}

// FastestOption returns the option with the earliest delivery window, or nil
// for an empty list. Price breaks ties.
func FastestOption(options []ShippingOption) *ShippingOption {
	var best *ShippingOption
	for i := range options {
		if best == nil ||
			options[i].DeliveryDaysMin < best.DeliveryDaysMin ||
			(options[i].DeliveryDaysMin == best.DeliveryDaysMin && options[i].Price < best.Price) {
			best = &options[i]
		}
	}
	return best
}
