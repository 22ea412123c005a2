package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sellerFixture struct {
	zones   *ZoneRepositoryMock
	rates   *RateRepositoryMock
	configs *SellerConfigRepositoryMock
	cache   *QuoteCacheFake

	zone    *shipping.Zone
	rate    *shipping.Rate
	handler queries.GetSellerShippingQueryHandler
}

func newSellerFixture(t *testing.T) *sellerFixture {
	t.Helper()

	carrier, err := shipping.NewCarrier(kernel.NewUUID(), "Rapid Logistics", shipping.CarrierTypeTableBased, true)
	require.NoError(t, err)

	coverage, err := shipping.NewPostalCodeRange(1000000, 5999999)
	require.NoError(t, err)

	zone, err := shipping.NewZone(kernel.NewUUID(), "SP Capital", carrier, "SP", []shipping.PostalCodeRange{coverage}, 1, true)
	require.NoError(t, err)

	tierA, err := shipping.NewWeightTier(0, 1000, 15.90)
	require.NoError(t, err)
	tierB, err := shipping.NewWeightTier(1001, 5000, 22.50)
	require.NoError(t, err)
	fees, err := shipping.NewAdditionalFees(0, 0, 0, 0)
	require.NoError(t, err)

	rate, err := shipping.NewRate(
		kernel.NewUUID(), zone.ID(), carrier.ID(),
		[]shipping.WeightTier{tierA, tierB},
		3.20, 2, 2, 5, fees, true,
	)
	require.NoError(t, err)

	f := &sellerFixture{
		zones:   &ZoneRepositoryMock{},
		rates:   &RateRepositoryMock{},
		configs: &SellerConfigRepositoryMock{},
		cache:   NewQuoteCacheFake(),
		zone:    zone,
		rate:    rate,
	}

	f.handler, err = queries.NewGetSellerShippingQueryHandler(f.zones, f.rates, f.configs, f.cache, time.Hour)
	require.NoError(t, err)

	return f
}

func sellerQuery(t *testing.T, items ...shipping.CartItem) queries.GetSellerShippingQuery {
	t.Helper()

	postalCode, err := kernel.NewPostalCode("01310-100")
	require.NoError(t, err)

	query, err := queries.NewGetSellerShippingQuery(postalCode, "seller-1", items)
	require.NoError(t, err)
	return query
}

func cartItem(weightGrams, unitPrice float64) shipping.CartItem {
	return shipping.CartItem{
		ProductID:   "prod-1",
		SellerID:    "seller-1",
		Quantity:    1,
		UnitPrice:   unitPrice,
		WeightGrams: weightGrams,
		HeightCm:    1, WidthCm: 1, LengthCm: 1,
	}
}

func TestGetSellerShippingQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("computes options for a serviced destination", func(t *testing.T) {
		f := newSellerFixture(t)
		f.zones.On("GetActiveZones", mock.Anything).Return([]*shipping.Zone{f.zone}, nil)
		f.configs.On("GetCandidateConfigs", mock.Anything, "seller-1", mock.Anything, mock.Anything).Return([]*shipping.SellerConfig{}, nil)
		f.rates.On("GetActiveRates", mock.Anything, mock.Anything, mock.Anything).Return([]*shipping.Rate{f.rate}, nil)

		response, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 100)))

		require.NoError(t, err)
		assert.Equal(t, "seller-1", response.SellerID)
		require.Len(t, response.Options, 1)
		assert.InDelta(t, 15.90, response.Options[0].Price, 1e-9)
		assert.False(t, response.FromCache)
		assert.Equal(t, 1, f.cache.Sets, "fresh computation is cached")
	})

	t.Run("second identical request is served from cache", func(t *testing.T) {
		f := newSellerFixture(t)
		f.zones.On("GetActiveZones", mock.Anything).Return([]*shipping.Zone{f.zone}, nil).Once()
		f.configs.On("GetCandidateConfigs", mock.Anything, "seller-1", mock.Anything, mock.Anything).Return([]*shipping.SellerConfig{}, nil).Once()
		f.rates.On("GetActiveRates", mock.Anything, mock.Anything, mock.Anything).Return([]*shipping.Rate{f.rate}, nil).Once()

		first, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 100)))
		require.NoError(t, err)

		second, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 100)))
		require.NoError(t, err)

		assert.True(t, second.FromCache)
		assert.Equal(t, first.Options, second.Options, "cached options are identical")
		f.zones.AssertNumberOfCalls(t, "GetActiveZones", 1)
	})

	t.Run("reordered items hit the same cache entry", func(t *testing.T) {
		f := newSellerFixture(t)
		f.zones.On("GetActiveZones", mock.Anything).Return([]*shipping.Zone{f.zone}, nil).Once()
		f.configs.On("GetCandidateConfigs", mock.Anything, "seller-1", mock.Anything, mock.Anything).Return([]*shipping.SellerConfig{}, nil).Once()
		f.rates.On("GetActiveRates", mock.Anything, mock.Anything, mock.Anything).Return([]*shipping.Rate{f.rate}, nil).Once()

		itemA := cartItem(400, 50)
		itemB := cartItem(400, 50)
		itemB.ProductID = "prod-2"

		_, err := f.handler.Handle(ctx, sellerQuery(t, itemA, itemB))
		require.NoError(t, err)

		response, err := f.handler.Handle(ctx, sellerQuery(t, itemB, itemA))
		require.NoError(t, err)

		assert.True(t, response.FromCache)
	})

	t.Run("applies the seller markup from the governing config", func(t *testing.T) {
		f := newSellerFixture(t)
		sellerID := "seller-1"
		config, err := shipping.NewSellerConfig(
			kernel.NewUUID(), &sellerID, nil, nil, 10.0, nil, nil, nil, 0, 1, true,
		)
		require.NoError(t, err)

		f.zones.On("GetActiveZones", mock.Anything).Return([]*shipping.Zone{f.zone}, nil)
		f.configs.On("GetCandidateConfigs", mock.Anything, "seller-1", mock.Anything, mock.Anything).Return([]*shipping.SellerConfig{config}, nil)
		f.rates.On("GetActiveRates", mock.Anything, mock.Anything, mock.Anything).Return([]*shipping.Rate{f.rate}, nil)

		response, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 100)))

		require.NoError(t, err)
		assert.InDelta(t, 17.49, response.Options[0].Price, 1e-9)
	})

	t.Run("zeroes options when the free shipping threshold is met", func(t *testing.T) {
		f := newSellerFixture(t)
		threshold := 199.00
		config, err := shipping.NewSellerConfig(
			kernel.NewUUID(), nil, nil, nil, 0, &threshold, nil, nil, 0, 1, true,
		)
		require.NoError(t, err)

		f.zones.On("GetActiveZones", mock.Anything).Return([]*shipping.Zone{f.zone}, nil)
		f.configs.On("GetCandidateConfigs", mock.Anything, "seller-1", mock.Anything, mock.Anything).Return([]*shipping.SellerConfig{config}, nil)
		f.rates.On("GetActiveRates", mock.Anything, mock.Anything, mock.Anything).Return([]*shipping.Rate{f.rate}, nil)

		response, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 199.00)))

		require.NoError(t, err)
		require.Len(t, response.Options, 1)
		assert.True(t, response.Options[0].IsFree)
		assert.Zero(t, response.Options[0].Price)
		assert.InDelta(t, 15.90, response.Options[0].DisplayPrice, 1e-9)
		assert.Equal(t, "Free shipping over R$199.00", response.Options[0].FreeReason)
	})

	t.Run("unserviced destination returns the sentinel error", func(t *testing.T) {
		f := newSellerFixture(t)
		f.zones.On("GetActiveZones", mock.Anything).Return([]*shipping.Zone{}, nil)

		_, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 100)))

		require.ErrorIs(t, err, services.ErrUnservicedPostalCode)
	})

	t.Run("carrier without rates returns ErrRateNotFound", func(t *testing.T) {
		f := newSellerFixture(t)
		f.zones.On("GetActiveZones", mock.Anything).Return([]*shipping.Zone{f.zone}, nil)
		f.configs.On("GetCandidateConfigs", mock.Anything, "seller-1", mock.Anything, mock.Anything).Return([]*shipping.SellerConfig{}, nil)
		f.rates.On("GetActiveRates", mock.Anything, mock.Anything, mock.Anything).Return([]*shipping.Rate{}, nil)

		_, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 100)))

		require.ErrorIs(t, err, services.ErrRateNotFound)
	})

	t.Run("repository failures are wrapped", func(t *testing.T) {
		f := newSellerFixture(t)
		repoErr := errors.New("connection refused")
		f.zones.On("GetActiveZones", mock.Anything).Return(nil, repoErr)

		_, err := f.handler.Handle(ctx, sellerQuery(t, cartItem(800, 100)))

		require.ErrorIs(t, err, repoErr)
	})

	t.Run("unconstructed query is rejected", func(t *testing.T) {
		f := newSellerFixture(t)
		var query queries.GetSellerShippingQuery

		_, err := f.handler.Handle(ctx, query)

		require.ErrorIs(t, err, queries.ErrGetSellerShippingQueryIsNotConstructed)
	})
}

func TestNewGetSellerShippingQuery(t *testing.T) {
	postalCode, err := kernel.NewPostalCode("01310-100")
	require.NoError(t, err)

	t.Run("rejects empty seller id", func(t *testing.T) {
		_, err := queries.NewGetSellerShippingQuery(postalCode, "", []shipping.CartItem{cartItem(800, 100)})

		require.Error(t, err)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := queries.NewGetSellerShippingQuery(postalCode, "seller-1", nil)

		require.Error(t, err)
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		bad := cartItem(800, 100)
		bad.Quantity = 0

		_, err := queries.NewGetSellerShippingQuery(postalCode, "seller-1", []shipping.CartItem{bad})

		require.Error(t, err)
	})

	t.Run("rejects unconstructed postal code", func(t *testing.T) {
		var zero kernel.PostalCode

		_, err := queries.NewGetSellerShippingQuery(zero, "seller-1", []shipping.CartItem{cartItem(800, 100)})

		require.Error(t, err)
	})
}
