package queries

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
	"freight/internal/core/domain/services"
)

const (
	// DefaultMaxConcurrentSellers bounds the fan-out of per-seller
	// computations for one cart.
	DefaultMaxConcurrentSellers = 10

	// DefaultCartQuoteTimeout is the deadline for quoting the whole cart.
	DefaultCartQuoteTimeout = 6 * time.Second
)

// GetCartShippingQueryHandler orchestrates a multi-seller cart quote.
//
// Items are grouped by seller in first-seen order and each group is quoted
// concurrently through the seller handler, bounded by maxConcurrent and a
// cart-wide deadline. A seller failing never fails the cart; only when every
// seller fails does the response come back unsuccessful. A malformed postal
// code is the one fatal input: no seller could ever be quoted against it.
type GetCartShippingQueryHandler struct {
	seller        GetSellerShippingQueryHandler
	maxConcurrent int
	timeout       time.Duration
}

// NewGetCartShippingQueryHandler creates the cart orchestrator on top of a
// seller handler. Non-positive maxConcurrent and timeout fall back to the
// package defaults.
func NewGetCartShippingQueryHandler(
	seller GetSellerShippingQueryHandler,
	maxConcurrent int,
	timeout time.Duration,
) GetCartShippingQueryHandler {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentSellers
	}
	if timeout <= 0 {
		timeout = DefaultCartQuoteTimeout
	}

	return GetCartShippingQueryHandler{
		seller:        seller,
		maxConcurrent: maxConcurrent,
		timeout:       timeout,
	}
}

// Handle quotes the cart. The returned error is non-nil only for invalid
// input (a malformed query or postal code); seller-level problems are
// reported inside the response.
func (h GetCartShippingQueryHandler) Handle(
	ctx context.Context,
	query GetCartShippingQuery,
) (GetCartShippingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartShippingQueryResponse{}, err
	}

	postalCode, err := kernel.NewPostalCode(query.PostalCode())
	if err != nil {
		return GetCartShippingQueryResponse{}, err
	}

	sellerIDs, groups := groupBySeller(query.Items())

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	type sellerResult struct {
		response GetSellerShippingQueryResponse
		failure  *SellerFailure
	}

	results := make([]sellerResult, len(sellerIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.maxConcurrent)

	for i, sellerID := range sellerIDs {
		g.Go(func() error {
			sellerQuery, err := NewGetSellerShippingQuery(postalCode, sellerID, groups[sellerID])
			if err != nil {
				results[i] = sellerResult{failure: classifyFailure(sellerID, err)}
				return nil
			}

			response, err := h.seller.Handle(gctx, sellerQuery)
			if err != nil {
				results[i] = sellerResult{failure: classifyFailure(sellerID, err)}
				return nil
			}

			results[i] = sellerResult{response: response}
			return nil
		})
	}

	// Workers report failures through results, never through errors, so the
	// group cannot be cancelled by a single seller.
	_ = g.Wait()

	response := GetCartShippingQueryResponse{
		Quotes:   make([]GetSellerShippingQueryResponse, 0, len(results)),
		Failures: make([]SellerFailure, 0),
	}

	for _, result := range results {
		if result.failure != nil {
			response.Failures = append(response.Failures, *result.failure)
			continue
		}
		response.Quotes = append(response.Quotes, result.response)
	}

	response.Success = len(response.Quotes) > 0
	response.Summary = h.summarize(query, response.Quotes)

	return response, nil
}

// summarize builds the cart totals from the per-seller quotes. The customer's
// pinned option drives each seller's contribution; without a pin the cheapest
// option does.
func (h GetCartShippingQueryHandler) summarize(
	query GetCartShippingQuery,
	quotes []GetSellerShippingQueryResponse,
) CartSummary {
	var summary CartSummary

	for _, quote := range quotes {
		selected := h.selectedOption(query, quote)
		if selected == nil {
			continue
		}

		summary.TotalShippingCost = services.Round2(summary.TotalShippingCost + selected.Price)

		if selected.DeliveryDaysMax > summary.MaxDeliveryDays {
			summary.MaxDeliveryDays = selected.DeliveryDaysMax
		}

		freeAvailable := false
		for _, opt := range quote.Options {
			if opt.IsFree {
				freeAvailable = true
				break
			}
		}

		if freeAvailable {
			summary.HasFreeShippingAvailable = true
			if !selected.IsFree {
				summary.PotentialSavings = services.Round2(summary.PotentialSavings + selected.Price)
			}
		}
	}

	return summary
}

func (h GetCartShippingQueryHandler) selectedOption(
	query GetCartShippingQuery,
	quote GetSellerShippingQueryResponse,
) *shipping.ShippingOption {
	if optionID, ok := query.SelectedOption(quote.SellerID); ok {
		for i := range quote.Options {
			if quote.Options[i].ID == optionID {
				return &quote.Options[i]
			}
		}
	}

	return shipping.CheapestOption(quote.Options)
}

// groupBySeller splits items into per-seller shipments, preserving the order
// sellers first appear in the cart.
func groupBySeller(items []shipping.CartItem) ([]string, map[string][]shipping.CartItem) {
	sellerIDs := make([]string, 0)
	groups := make(map[string][]shipping.CartItem)

	for _, item := range items {
		if _, seen := groups[item.SellerID]; !seen {
			sellerIDs = append(sellerIDs, item.SellerID)
		}
		groups[item.SellerID] = append(groups[item.SellerID], item)
	}

	return sellerIDs, groups
}

// classifyFailure maps a seller computation error to its failure kind.
func classifyFailure(sellerID string, err error) *SellerFailure {
	kind := FailureConfigFetch

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = FailureTimeout
	case errors.Is(err, services.ErrUnservicedPostalCode):
		kind = FailureUnservicedPostalCode
	case errors.Is(err, services.ErrRateNotFound):
		kind = FailureRateNotFound
	}

	return &SellerFailure{
		SellerID: sellerID,
		Kind:     kind,
		Message:  err.Error(),
	}
}
