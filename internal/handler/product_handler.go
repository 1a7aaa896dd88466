package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
)

type ProductRequest struct {
	Name            string            `json:"name" validate:"required,min=2"`
	Description     string            `json:"description"`
	Price           decimal.Decimal   `json:"price"`
	DiscountPercent int               `json:"discount" validate:"gte=0,lte=100"`
	Stock           int               `json:"stock" validate:"gte=0"`
	Category        string            `json:"category" validate:"required"`
	Subcategory     string            `json:"subcategory,omitempty"`
	Tags            []string          `json:"tags"`
	Images          []string          `json:"images"`
	Specifications  map[string]string `json:"specifications"`
}

type ProductHandler struct {
	repo     catalog.Repository
	validate *validator.Validate
}

func NewProductHandler(repo catalog.Repository) *ProductHandler {
	return &ProductHandler{
		repo:     repo,
		validate: validator.New(),
	}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProductByID)
	router.Get("/products/category/{category}", h.handleListProductsByCategory)
	router.Post("/products", h.handleCreateProduct)
	router.Put("/products/{id}", h.handleUpdateProduct)
	router.Delete("/products/{id}", h.handleDeleteProduct)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.repo.ListByCategory(r.Context(), category)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to list products by category")
		respondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("Failed to get product")
		respondWithError(w, http.StatusInternalServerError, "Failed to get product")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeProductRequest(w, r)
	if !ok {
		return
	}

	product := productFromRequest(payload)

	if err := h.repo.Create(r.Context(), product); err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to create product"))
		return
	}

	respondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	payload, ok := h.decodeProductRequest(w, r)
	if !ok {
		return
	}

	product := productFromRequest(payload)
	product.ID = id

	if err := h.repo.Update(r.Context(), product); err != nil {
		log.Error().Err(err).Stringer("product_id", id).Msg("Failed to update product")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to update product"))
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("Failed to delete product")
		respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) decodeProductRequest(w http.ResponseWriter, r *http.Request) (*ProductRequest, bool) {
	var payload ProductRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&payload); err != nil {
		log.Error().Err(err).Msg("Failed to decode product request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationError(w, err)
		return nil, false
	}

	if payload.Price.IsNegative() {
		respondWithError(w, http.StatusBadRequest, "Price must be non-negative")
		return nil, false
	}

	return &payload, true
}

func productFromRequest(payload *ProductRequest) *catalog.Product {
	return &catalog.Product{
		Name:            payload.Name,
		Description:     payload.Description,
		Price:           payload.Price,
		DiscountPercent: payload.DiscountPercent,
		Stock:           payload.Stock,
		Category:        payload.Category,
		Subcategory:     payload.Subcategory,
		Tags:            payload.Tags,
		Images:          payload.Images,
		Specifications:  payload.Specifications,
	}
}

func clientMessage(err error, fallback string) string {
	if errors.Is(err, catalog.ErrProductExists) {
		return "Product with this name already exists"
	}
	if errors.Is(err, catalog.ErrProductNotFound) {
		return "Product not found"
	}
	return fallback
}
