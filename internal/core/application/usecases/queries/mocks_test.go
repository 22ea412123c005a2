package queries_test

import (
	"context"
	"sync"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"

	"github.com/stretchr/testify/mock"
)

type ZoneRepositoryMock struct {
	mock.Mock
}

func (m *ZoneRepositoryMock) GetActiveZones(ctx context.Context) ([]*shipping.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Zone), args.Error(1)
}

type RateRepositoryMock struct {
	mock.Mock
}

func (m *RateRepositoryMock) GetActiveRates(ctx context.Context, zoneID, carrierID kernel.UUID) ([]*shipping.Rate, error) {
	args := m.Called(ctx, zoneID, carrierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Rate), args.Error(1)
}

type SellerConfigRepositoryMock struct {
	mock.Mock
}

func (m *SellerConfigRepositoryMock) GetCandidateConfigs(ctx context.Context, sellerID string, carrierID, zoneID kernel.UUID) ([]*shipping.SellerConfig, error) {
	args := m.Called(ctx, sellerID, carrierID, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.SellerConfig), args.Error(1)
}

// QuoteCacheFake is a map-backed cache used to exercise the warm-cache path
// without a backend.
type QuoteCacheFake struct {
	mu      sync.Mutex
	entries map[string]shipping.Quote

	Gets int
	Sets int
}

func NewQuoteCacheFake() *QuoteCacheFake {
	return &QuoteCacheFake{entries: make(map[string]shipping.Quote)}
}

func (f *QuoteCacheFake) Get(_ context.Context, key string) (*shipping.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Gets++
	quote, ok := f.entries[key]
	if !ok {
		return nil, nil
	}
	return &quote, nil
}

func (f *QuoteCacheFake) Set(_ context.Context, quote *shipping.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Sets++
	f.entries[quote.CacheKey] = *quote
	return nil
}
