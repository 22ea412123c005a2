// Package http exposes the freight engine over HTTP.
package http

import (
	"errors"
	"net/http"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP surface of the engine. It coordinates between
// request decoding and the application query handlers.
type Server struct {
	cartShippingHandler   queries.GetCartShippingQueryHandler
	sellerShippingHandler queries.GetSellerShippingQueryHandler
}

// NewServer creates a new HTTP server with the required query handlers.
func NewServer(
	cartShippingHandler queries.GetCartShippingQueryHandler,
	sellerShippingHandler queries.GetSellerShippingQueryHandler,
) *Server {
	return &Server{
		cartShippingHandler:   cartShippingHandler,
		sellerShippingHandler: sellerShippingHandler,
	}
}

// Error is the JSON error envelope of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CartQuoteRequest is the body of POST /api/v1/shipping/quotes.
type CartQuoteRequest struct {
	PostalCode      string              `json:"postal_code"`
	Items           []shipping.CartItem `json:"items"`
	SelectedOptions map[string]string   `json:"selected_options,omitempty"`
}

// SellerQuoteRequest is the body of POST /api/v1/shipping/quotes/seller.
type SellerQuoteRequest struct {
	PostalCode string              `json:"postal_code"`
	SellerID   string              `json:"seller_id"`
	Items      []shipping.CartItem `json:"items"`
}

// QuoteCart handles POST /api/v1/shipping/quotes - quotes a multi-seller cart.
//
// Responses:
//   - 200 with the cart quote, possibly partial (failed sellers listed inside)
//   - 400 for undecodable bodies, empty carts or malformed postal codes
func (s *Server) QuoteCart(ctx echo.Context) error {
	var request CartQuoteRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	query, err := queries.NewGetCartShippingQuery(request.PostalCode, request.Items, request.SelectedOptions)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote request: " + err.Error(),
		})
	}

	response, err := s.cartShippingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapQuoteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// QuoteSeller handles POST /api/v1/shipping/quotes/seller - quotes a single
// seller's shipment.
func (s *Server) QuoteSeller(ctx echo.Context) error {
	var request SellerQuoteRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	postalCode, err := kernel.NewPostalCode(request.PostalCode)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid postal code: " + err.Error(),
		})
	}

	query, err := queries.NewGetSellerShippingQuery(postalCode, request.SellerID, request.Items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote request: " + err.Error(),
		})
	}

	response, err := s.sellerShippingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapQuoteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// mapQuoteError translates application errors into HTTP responses. Invalid
// input stays 4xx; anything else is a 500 with a generic message so internal
// details never leak to clients.
func (s *Server) mapQuoteError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, kernel.ErrInvalidPostalCode),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute shipping quote",
		})
	}
}
