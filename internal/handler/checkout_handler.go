package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/toolstore/internal/checkout"
	"github.com/vasiliy-maslov/toolstore/internal/order"
)

type ShippingAddressRequest struct {
	FullName     string `json:"full_name" validate:"required,min=2"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required,len=6,numeric"`
	Phone        string `json:"phone" validate:"required,min=10"`
}

type CheckoutRequest struct {
	UserID          string                 `json:"user_id" validate:"required,uuid4"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" validate:"required"`
	PaymentMethod   string                 `json:"payment_method" validate:"required,oneof=cod bank"`
}

type CheckoutHandler struct {
	svc      checkout.Service
	validate *validator.Validate
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *CheckoutHandler) RegisterRoutes(router chi.Router) {
	router.Post("/checkout", h.handleCheckout)
}

func (h *CheckoutHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var payload CheckoutRequest

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

	userID, err := uuid.FromString(payload.UserID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	address := order.Address{
		FullName:     payload.ShippingAddress.FullName,
		AddressLine1: payload.ShippingAddress.AddressLine1,
		AddressLine2: payload.ShippingAddress.AddressLine2,
		City:         payload.ShippingAddress.City,
		State:        payload.ShippingAddress.State,
		Pincode:      payload.ShippingAddress.Pincode,
		Phone:        payload.ShippingAddress.Phone,
	}

	o, err := h.svc.Submit(r.Context(), session, userID, address, order.PaymentMethod(payload.PaymentMethod))
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) || errors.Is(err, order.ErrEmptyOrder) {
			respondWithError(w, http.StatusBadRequest, "Cart is empty")
			return
		}
		log.Error().Err(err).Str("session_id", session).Msg("Checkout failed")
		respondWithError(w, mapErrorToStatusCode(err), "Checkout failed")
		return
	}

	respondWithJSON(w, http.StatusCreated, o)
}
