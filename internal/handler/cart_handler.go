package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/toolstore/internal/cart"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
	"github.com/vasiliy-maslov/toolstore/internal/currency"
	"github.com/vasiliy-maslov/toolstore/internal/pricing"
)

type AddCartItemRequest struct {
	ProductID     string `json:"product_id" validate:"required,uuid4"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
	SelectedSize  string `json:"selected_size"`
	SelectedColor string `json:"selected_color"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// QuoteDisplay is the optional display-currency view of a quote. It is
// derived per request and never written anywhere.
type QuoteDisplay struct {
	Subtotal currency.Display `json:"subtotal"`
	Shipping currency.Display `json:"shipping"`
	Tax      currency.Display `json:"tax"`
	Total    currency.Display `json:"total"`
}

type CartResponse struct {
	Items    []cart.LineItem `json:"items"`
	Quote    pricing.Quote   `json:"quote"`
	Display  *QuoteDisplay   `json:"display,omitempty"`
	Currency string          `json:"currency"`
}

type CartHandler struct {
	svc       cart.Service
	converter *currency.Converter
	validate  *validator.Validate
}

func NewCartHandler(svc cart.Service, converter *currency.Converter) *CartHandler {
	return &CartHandler{
		svc:       svc,
		converter: converter,
		validate:  validator.New(),
	}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleViewCart)
	router.Post("/cart/items", h.handleAddItem)
	router.Patch("/cart/items/{productId}", h.handleUpdateItem)
	router.Delete("/cart/items/{productId}", h.handleRemoveItem)
	router.Delete("/cart", h.handleClearCart)
}

func (h *CartHandler) handleViewCart(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	ledger, err := h.svc.View(r.Context(), session)
	if err != nil {
		log.Error().Err(err).Str("session_id", session).Msg("Failed to load cart")
		respondWithError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	h.respondWithCart(w, r, ledger)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var payload AddCartItemRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	productID, err := uuid.FromString(payload.ProductID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	ledger, err := h.svc.AddItem(r.Context(), session, productID, payload.Quantity, payload.SelectedSize, payload.SelectedColor)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondWithError(w, http.StatusBadRequest, "Quantity must be a positive integer")
			return
		}
		log.Error().Err(err).Str("session_id", session).Msg("Failed to add cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to add cart item")
		return
	}

	h.respondWithCart(w, r, ledger)
}

func (h *CartHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	productID, err := uuid.FromString(chi.URLParam(r, "productId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var payload UpdateCartItemRequest

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	ledger, err := h.svc.UpdateItemQuantity(r.Context(), session, productID, payload.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondWithError(w, http.StatusBadRequest, "Quantity must be a positive integer")
			return
		}
		log.Error().Err(err).Str("session_id", session).Stringer("product_id", productID).Msg("Failed to update cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	h.respondWithCart(w, r, ledger)
}

// handleRemoveItem deletes by product id alone, or by the full identity key
// when size or color query parameters are given.
func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	productID, err := uuid.FromString(chi.URLParam(r, "productId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	size := r.URL.Query().Get("size")
	color := r.URL.Query().Get("color")

	var ledger *cart.Ledger
	if size != "" || color != "" {
		ledger, err = h.svc.RemoveItemVariant(r.Context(), session, productID, size, color)
	} else {
		ledger, err = h.svc.RemoveItem(r.Context(), session, productID)
	}
	if err != nil {
		log.Error().Err(err).Str("session_id", session).Stringer("product_id", productID).Msg("Failed to remove cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	h.respondWithCart(w, r, ledger)
}

func (h *CartHandler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Clear(r.Context(), session); err != nil {
		log.Error().Err(err).Str("session_id", session).Msg("Failed to clear cart")
		respondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, ledger *cart.Ledger) {
	quote := pricing.Compute(ledger)

	response := CartResponse{
		Items:    ledger.Items,
		Quote:    quote,
		Currency: currency.BaseCurrency,
	}

	code := r.URL.Query().Get("currency")
	if code != "" && code != currency.BaseCurrency {
		display, err := displayQuote(h.converter, quote, code)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Unknown currency code")
			return
		}
		response.Display = display
	}

	respondWithJSON(w, http.StatusOK, response)
}

func displayQuote(converter *currency.Converter, quote pricing.Quote, code string) (*QuoteDisplay, error) {
	subtotal, err := converter.Convert(quote.Subtotal, code)
	if err != nil {
		return nil, err
	}
	shipping, err := converter.Convert(quote.ShippingFee, code)
	if err != nil {
		return nil, err
	}
	tax, err := converter.Convert(quote.Tax, code)
	if err != nil {
		return nil, err
	}
	total, err := converter.Convert(quote.Total, code)
	if err != nil {
		return nil, err
	}

	return &QuoteDisplay{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}, nil
}
