package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/toolstore/internal/currency"
	"github.com/vasiliy-maslov/toolstore/internal/order"
	"github.com/vasiliy-maslov/toolstore/internal/pricing"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered"`
}

// OrderResponse wraps an order with an optional display-currency view of
// its stored totals. The stored amounts themselves are never converted.
type OrderResponse struct {
	Order   *order.Order  `json:"order"`
	Display *QuoteDisplay `json:"display,omitempty"`
}

type OrderHandler struct {
	svc       order.Service
	converter *currency.Converter
	validate  *validator.Validate
}

func NewOrderHandler(svc order.Service, converter *currency.Converter) *OrderHandler {
	return &OrderHandler{
		svc:       svc,
		converter: converter,
		validate:  validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders/{id}", h.handleGetOrderByID)
	router.Get("/users/{userId}/orders", h.handleListUserOrders)
	router.Patch("/orders/{id}/status", h.handleUpdateOrderStatus)
}

func (h *OrderHandler) handleGetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	o, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Error().Err(err).Stringer("order_id", id).Msg("Failed to get order")
		respondWithError(w, http.StatusInternalServerError, "Failed to get order")
		return
	}

	response := OrderResponse{Order: o}

	code := r.URL.Query().Get("currency")
	if code != "" && code != currency.BaseCurrency {
		display, err := displayQuote(h.converter, pricing.Quote{
			Subtotal:    o.Subtotal,
			ShippingFee: o.ShippingFee,
			Tax:         o.Tax,
			Total:       o.Total,
		}, code)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Unknown currency code")
			return
		}
		response.Display = display
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *OrderHandler) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.FromString(chi.URLParam(r, "userId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	orders, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("Failed to list user orders")
		respondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var payload UpdateOrderStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, order.OrderStatus(payload.Status)); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			respondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrInvalidStatusTransition):
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error().Err(err).Stringer("order_id", id).Msg("Failed to update order status")
			respondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
