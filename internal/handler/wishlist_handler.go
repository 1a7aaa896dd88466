package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
	"github.com/vasiliy-maslov/toolstore/internal/wishlist"
)

type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
}

type WishlistHandler struct {
	store    wishlist.Store
	products catalog.Repository
	validate *validator.Validate
}

func NewWishlistHandler(store wishlist.Store, products catalog.Repository) *WishlistHandler {
	return &WishlistHandler{
		store:    store,
		products: products,
		validate: validator.New(),
	}
}

func (h *WishlistHandler) RegisterRoutes(router chi.Router) {
	router.Get("/wishlist", h.handleListWishlist)
	router.Post("/wishlist/items", h.handleAddItem)
	router.Delete("/wishlist/items/{productId}", h.handleRemoveItem)
}

func (h *WishlistHandler) handleListWishlist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	products, err := h.store.List(r.Context(), session)
	if err != nil {
		log.Error().Err(err).Str("session_id", session).Msg("Failed to list wishlist")
		respondWithError(w, http.StatusInternalServerError, "Failed to list wishlist")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *WishlistHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var payload AddWishlistItemRequest

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
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

	product, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Stringer("product_id", productID).Msg("Failed to fetch product for wishlist")
		respondWithError(w, http.StatusInternalServerError, "Failed to add wishlist item")
		return
	}

	if err := h.store.Add(r.Context(), session, *product); err != nil {
		log.Error().Err(err).Str("session_id", session).Stringer("product_id", productID).Msg("Failed to add wishlist item")
		respondWithError(w, http.StatusInternalServerError, "Failed to add wishlist item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	productID, err := uuid.FromString(chi.URLParam(r, "productId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.store.Remove(r.Context(), session, productID); err != nil {
		log.Error().Err(err).Str("session_id", session).Stringer("product_id", productID).Msg("Failed to remove wishlist item")
		respondWithError(w, http.StatusInternalServerError, "Failed to remove wishlist item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
