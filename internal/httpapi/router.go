// Package httpapi is the display surface: it exposes the catalog, the
// cart store's accessors and mutations, checkout, and the admin CRUD
// over HTTP. Precondition checks the cart store deliberately leaves to
// its callers (stock gating, empty-cart checkout) live here.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/auth"
)

type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
	Auth     *AuthHandler
}

// NewRouter wires all routes. Admin routes sit behind the session-token
// middleware; everything else is public.
func NewRouter(h Handlers, authSvc *auth.Service, requestTimeout time.Duration, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.Products.List)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Post("/items", h.Cart.AddItem)
			r.Post("/items/{product_id}/increase", h.Cart.IncreaseQuantity)
			r.Post("/items/{product_id}/decrease", h.Cart.DecreaseQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			r.Delete("/", h.Cart.Clear)
			r.Post("/toggle", h.Cart.ToggleVisibility)
		})

		r.Post("/checkout", h.Checkout.Checkout)
		r.Post("/auth/login", h.Auth.Login)

		r.Route("/admin/products", func(r chi.Router) {
			r.Use(authSvc.Middleware)
			r.Post("/", h.Admin.CreateProduct)
			r.Put("/{product_id}", h.Admin.UpdateProduct)
			r.Delete("/{product_id}", h.Admin.DeleteProduct)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
