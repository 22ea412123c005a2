package services_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type configSpec struct {
	sellerID    *string
	carrierID   *kernel.UUID
	zoneID      *kernel.UUID
	threshold   *float64
	productIDs  []string
	categoryIDs []string
	maxWeightKg float64
	priority    int
	active      bool
}

func buildConfig(t *testing.T, spec configSpec) *shipping.SellerConfig {
	t.Helper()

	cfg, err := shipping.NewSellerConfig(
		kernel.NewUUID(),
		spec.sellerID, spec.carrierID, spec.zoneID,
		0,
		spec.threshold, spec.productIDs, spec.categoryIDs,
		spec.maxWeightKg, spec.priority, spec.active,
	)
	require.NoError(t, err)
	return cfg
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func paidOptions() []shipping.ShippingOption {
	return []shipping.ShippingOption{
		{ID: "a", Price: 15.90, DisplayPrice: 15.90, Modality: shipping.ModalityStandard},
		{ID: "b", Price: 31.00, DisplayPrice: 31.00, Modality: shipping.ModalityExpress},
	}
}

func TestFreeShippingPolicy_SelectConfig(t *testing.T) {
	policy := services.NewFreeShippingPolicy()
	zone := testZone()

	t.Run("seller scoped config beats global config", func(t *testing.T) {
		global := buildConfig(t, configSpec{threshold: floatPtr(99), priority: 1, active: true})
		sellerScoped := buildConfig(t, configSpec{sellerID: strPtr("seller-1"), threshold: floatPtr(199), priority: 1, active: true})

		selected := policy.SelectConfig([]*shipping.SellerConfig{global, sellerScoped}, "seller-1", zone)

		require.NotNil(t, selected)
		assert.Equal(t, 199.00, *selected.FreeShippingThreshold())
	})

	t.Run("fully scoped config beats seller only config", func(t *testing.T) {
		sellerOnly := buildConfig(t, configSpec{sellerID: strPtr("seller-1"), threshold: floatPtr(199), priority: 1, active: true})
		carrierID := zone.CarrierID
		zoneID := zone.ZoneID
		full := buildConfig(t, configSpec{sellerID: strPtr("seller-1"), carrierID: &carrierID, zoneID: &zoneID, threshold: floatPtr(149), priority: 1, active: true})

		selected := policy.SelectConfig([]*shipping.SellerConfig{sellerOnly, full}, "seller-1", zone)

		require.NotNil(t, selected)
		assert.Equal(t, 149.00, *selected.FreeShippingThreshold())
	})

	t.Run("lower priority wins at equal specificity", func(t *testing.T) {
		later := buildConfig(t, configSpec{sellerID: strPtr("seller-1"), threshold: floatPtr(299), priority: 5, active: true})
		earlier := buildConfig(t, configSpec{sellerID: strPtr("seller-1"), threshold: floatPtr(199), priority: 1, active: true})

		selected := policy.SelectConfig([]*shipping.SellerConfig{later, earlier}, "seller-1", zone)

		require.NotNil(t, selected)
		assert.Equal(t, 199.00, *selected.FreeShippingThreshold())
	})

	t.Run("configs for other sellers never apply", func(t *testing.T) {
		foreign := buildConfig(t, configSpec{sellerID: strPtr("seller-2"), threshold: floatPtr(99), priority: 1, active: true})

		selected := policy.SelectConfig([]*shipping.SellerConfig{foreign}, "seller-1", zone)

		assert.Nil(t, selected)
	})

	t.Run("inactive configs never apply", func(t *testing.T) {
		inactive := buildConfig(t, configSpec{threshold: floatPtr(99), priority: 1, active: false})

		selected := policy.SelectConfig([]*shipping.SellerConfig{inactive}, "seller-1", zone)

		assert.Nil(t, selected)
	})
}

func TestFreeShippingPolicy_Apply(t *testing.T) {
	policy := services.NewFreeShippingPolicy()

	items := []shipping.CartItem{
		{ProductID: "prod-1", SellerID: "seller-1", Quantity: 1, UnitPrice: 199.00, CategoryID: "books"},
	}

	t.Run("threshold is inclusive", func(t *testing.T) {
		cfg := buildConfig(t, configSpec{threshold: floatPtr(199.00), priority: 1, active: true})

		options := policy.Apply(cfg, items, 199.00, 1000, paidOptions())

		require.Len(t, options, 2)
		for _, opt := range options {
			assert.True(t, opt.IsFree)
			assert.Zero(t, opt.Price)
			assert.Equal(t, "Free shipping over R$199.00", opt.FreeReason)
		}
		assert.Equal(t, 15.90, options[0].DisplayPrice, "pre-discount price survives for display")
		assert.Equal(t, 15.90, options[0].Breakdown.FreeShippingDiscount)
	})

	t.Run("below threshold stays paid", func(t *testing.T) {
		cfg := buildConfig(t, configSpec{threshold: floatPtr(199.00), priority: 1, active: true})

		options := policy.Apply(cfg, items, 198.99, 1000, paidOptions())

		for _, opt := range options {
			assert.False(t, opt.IsFree)
			assert.Positive(t, opt.Price)
		}
	})

	t.Run("free shipping product in cart zeroes options", func(t *testing.T) {
		cfg := buildConfig(t, configSpec{productIDs: []string{"prod-1"}, priority: 1, active: true})

		options := policy.Apply(cfg, items, 50.00, 1000, paidOptions())

		assert.True(t, options[0].IsFree)
		assert.Equal(t, "Product prod-1 ships free", options[0].FreeReason)
	})

	t.Run("free shipping category in cart zeroes options", func(t *testing.T) {
		cfg := buildConfig(t, configSpec{categoryIDs: []string{"books"}, priority: 1, active: true})

		options := policy.Apply(cfg, items, 50.00, 1000, paidOptions())

		assert.True(t, options[0].IsFree)
		assert.Equal(t, "Category books ships free", options[0].FreeReason)
	})

	t.Run("oversized cart disables free shipping", func(t *testing.T) {
		cfg := buildConfig(t, configSpec{threshold: floatPtr(199.00), maxWeightKg: 30, priority: 1, active: true})

		options := policy.Apply(cfg, items, 500.00, 30001, paidOptions())

		for _, opt := range options {
			assert.False(t, opt.IsFree)
			assert.Positive(t, opt.Price)
		}
	})

	t.Run("weight exactly at the limit keeps free shipping", func(t *testing.T) {
		cfg := buildConfig(t, configSpec{threshold: floatPtr(199.00), maxWeightKg: 30, priority: 1, active: true})

		options := policy.Apply(cfg, items, 500.00, 30000, paidOptions())

		assert.True(t, options[0].IsFree)
	})

	t.Run("nil config leaves options untouched", func(t *testing.T) {
		options := policy.Apply(nil, items, 500.00, 1000, paidOptions())

		assert.Equal(t, paidOptions(), options)
	})

	t.Run("config without rules leaves options untouched", func(t *testing.T) {
		cfg := buildConfig(t, configSpec{priority: 1, active: true})

		options := policy.Apply(cfg, items, 500.00, 1000, paidOptions())

		assert.Equal(t, paidOptions(), options)
	})
}
