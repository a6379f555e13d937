package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/cart"
	"github.com/Mederbek08/muslim-kg/internal/catalog/repository"
	"github.com/Mederbek08/muslim-kg/internal/domain"
)

type CartHandler struct {
	store   *cart.Store
	catalog Catalog
	log     *zap.SugaredLogger
}

func NewCartHandler(store *cart.Store, catalog Catalog, log *zap.SugaredLogger) *CartHandler {
	return &CartHandler{store: store, catalog: catalog, log: log}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type CartResponseDTO struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
	IsOpen     bool              `json:"isOpen"`
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	return CartResponseDTO{
		Items:      h.store.Items(),
		TotalItems: h.store.TotalItemCount(),
		TotalPrice: h.store.TotalPrice(),
		IsOpen:     h.store.IsOpen(),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.log, http.StatusOK, h.cartResponse())
}

// AddItem looks the product up and merges it into the cart. The stock
// gate lives here, on the display surface: the store itself accepts any
// add, so this handler refuses one that would exceed available stock.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, h.log, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, h.log, http.StatusNotFound, "not_found", "product not found")
			return
		}
		h.log.Errorw("failed to load product", "product_id", req.ProductID, "error", err)
		respondError(w, h.log, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	if h.quantityInCart(product.ID) >= product.Stock {
		respondError(w, h.log, http.StatusConflict, "out_of_stock", "not enough stock for this product")
		return
	}

	h.store.AddToCart(r.Context(), product)
	respondJSON(w, h.log, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	for _, li := range h.store.Items() {
		if li.Product.ID == productID && li.Quantity >= li.Product.Stock {
			respondError(w, h.log, http.StatusConflict, "out_of_stock", "quantity already at available stock")
			return
		}
	}

	h.store.IncreaseQuantity(r.Context(), productID)
	respondJSON(w, h.log, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.store.DecreaseQuantity(r.Context(), chi.URLParam(r, "product_id"))
	respondJSON(w, h.log, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveFromCart(r.Context(), chi.URLParam(r, "product_id"))
	respondJSON(w, h.log, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart(r.Context())
	respondJSON(w, h.log, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleVisibility()
	respondJSON(w, h.log, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) quantityInCart(productID string) int {
	for _, li := range h.store.Items() {
		if li.Product.ID == productID {
			return li.Quantity
		}
	}
	return 0
}
