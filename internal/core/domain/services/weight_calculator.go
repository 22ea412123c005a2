package services

import (
	"math"

	"freight/internal/core/domain/model/shipping"
)

// Catalog fallbacks for items without physical data. Sellers often omit
// weight and dimensions, so quoting must still produce a sane shipment.
const (
	// DefaultItemWeightGrams is assumed for items without a weight.
	DefaultItemWeightGrams = 300.0

	// DefaultItemHeightCm, DefaultItemWidthCm and DefaultItemLengthCm are
	// assumed for items missing any dimension.
	DefaultItemHeightCm = 10.0
	DefaultItemWidthCm  = 10.0
	DefaultItemLengthCm = 15.0

	// VolumetricDivisor converts cubic centimeters to volumetric kilograms.
	// 5000 is the road freight standard used by Brazilian carriers.
	VolumetricDivisor = 5000.0
)

// Measurement is the physical summary of a shipment: the real and volumetric
// weights of all items and the billable weight carriers charge by.
type Measurement struct {
	RealWeightGrams       float64
	VolumetricWeightGrams float64
	BillableWeightGrams   float64
	CartValue             float64
}

// WeightCalculator is a domain service that derives the billable weight of a
// shipment. Carriers charge whichever is greater between the real weight and
// the volumetric weight, so bulky-but-light shipments pay for the space they
// occupy.
type WeightCalculator struct{}

// NewWeightCalculator creates a new WeightCalculator instance.
func NewWeightCalculator() WeightCalculator {
	return WeightCalculator{}
}

// Measure sums the shipment's real and volumetric weights and returns the
// measurement with the billable weight set to the greater of the two.
// Items without weight or dimensions use the catalog fallbacks.
func (w WeightCalculator) Measure(items []shipping.CartItem) Measurement {
	var m Measurement

	for _, item := range items {
		qty := float64(item.Quantity)

		weight := item.WeightGrams
		if weight == 0 {
			weight = DefaultItemWeightGrams
		}

		height := item.HeightCm
		if height == 0 {
			height = DefaultItemHeightCm
		}
		width := item.WidthCm
		if width == 0 {
			width = DefaultItemWidthCm
		}
		length := item.LengthCm
		if length == 0 {
			length = DefaultItemLengthCm
		}

		volumetricKg := height * width * length / VolumetricDivisor

		m.RealWeightGrams += weight * qty
		m.VolumetricWeightGrams += volumetricKg * 1000 * qty
		m.CartValue += item.Subtotal()
	}

	m.BillableWeightGrams = math.Max(m.RealWeightGrams, m.VolumetricWeightGrams)

	return m
}
