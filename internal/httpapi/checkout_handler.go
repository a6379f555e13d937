package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/cart"
	"github.com/Mederbek08/muslim-kg/internal/checkout"
	"github.com/Mederbek08/muslim-kg/internal/events"
)

type CheckoutHandler struct {
	store     *cart.Store
	composer  *checkout.Composer
	publisher events.Publisher
	handle    string // destination handle, configured, never user input
	log       *zap.SugaredLogger
}

func NewCheckoutHandler(store *cart.Store, composer *checkout.Composer, publisher events.Publisher, handle string, log *zap.SugaredLogger) *CheckoutHandler {
	return &CheckoutHandler{
		store:     store,
		composer:  composer,
		publisher: publisher,
		handle:    handle,
		log:       log,
	}
}

type CheckoutResponseDTO struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Checkout composes the handoff link for the current cart. The cart is
// left intact so the customer can re-send the same order; only the
// panel is closed, matching the storefront's behaviour.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	items := h.store.Items()
	if len(items) == 0 {
		respondError(w, h.log, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	}

	message := h.composer.Message(items)
	link := h.composer.CheckoutLink(items, h.handle)

	event := events.OrderComposed{
		OrderID:    uuid.NewString(),
		Total:      h.store.TotalPrice(),
		ComposedAt: time.Now(),
	}
	for _, li := range items {
		event.Lines = append(event.Lines, events.OrderLine{
			ProductID: li.Product.ID,
			Title:     li.Product.Title,
			Quantity:  li.Quantity,
			Subtotal:  li.Subtotal(),
		})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.publisher.PublishOrderComposed(ctx, event); err != nil {
			h.log.Warnw("failed to publish order event", "order_id", event.OrderID, "error", err)
		}
	}()

	h.store.SetOpen(false)

	respondJSON(w, h.log, http.StatusOK, CheckoutResponseDTO{
		URL:     link,
		Message: message,
	})
}
