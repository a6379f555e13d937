package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/catalog/repository"
	"github.com/Mederbek08/muslim-kg/internal/domain"
)

type AdminHandler struct {
	catalog Catalog
	log     *zap.SugaredLogger
}

func NewAdminHandler(catalog Catalog, log *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{catalog: catalog, log: log}
}

type ProductRequestDTO struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
}

func (dto ProductRequestDTO) validate() (code, message string, ok bool) {
	if dto.Title == "" {
		return "invalid_title", "title is required", false
	}
	if dto.Category == "" {
		return "invalid_category", "category is required", false
	}
	if dto.Price < 0 {
		return "invalid_price", "price must not be negative", false
	}
	if dto.Stock < 0 {
		return "invalid_stock", "stock must not be negative", false
	}
	return "", "", true
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, message, ok := req.validate(); !ok {
		respondError(w, h.log, http.StatusBadRequest, code, message)
		return
	}

	created, err := h.catalog.Create(r.Context(), domain.Product{
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	})
	if err != nil {
		h.log.Errorw("failed to create product", "error", err)
		respondError(w, h.log, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}

	respondJSON(w, h.log, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, message, ok := req.validate(); !ok {
		respondError(w, h.log, http.StatusBadRequest, code, message)
		return
	}

	product := domain.Product{
		ID:          chi.URLParam(r, "product_id"),
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	if err := h.catalog.Update(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, h.log, http.StatusNotFound, "not_found", "product not found")
			return
		}
		h.log.Errorw("failed to update product", "product_id", product.ID, "error", err)
		respondError(w, h.log, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}

	respondJSON(w, h.log, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	if err := h.catalog.Delete(r.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, h.log, http.StatusNotFound, "not_found", "product not found")
			return
		}
		h.log.Errorw("failed to delete product", "product_id", productID, "error", err)
		respondError(w, h.log, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
