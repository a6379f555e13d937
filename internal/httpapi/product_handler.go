package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/domain"
)

// Catalog is the slice of the catalog service the handlers consume.
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	catalog Catalog
	log     *zap.SugaredLogger
}

func NewProductHandler(catalog Catalog, log *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

// List serves the storefront listing. Search and category narrowing
// happen here, over the full (cached) listing, the same way the
// storefront filters client-side.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.log.Errorw("failed to list products", "error", err)
		respondError(w, h.log, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}

	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}

	respondJSON(w, h.log, http.StatusOK, filtered)
}
