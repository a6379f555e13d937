// Package cart owns the in-memory shopping cart and keeps its durable
// mirror in sync. The store is the single source of truth for cart
// contents; display surfaces read it through accessors and never touch
// the durable entry directly.
package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/cart/repository"
	"github.com/Mederbek08/muslim-kg/internal/domain"
)

// Store guards the cart line items and the panel-visibility flag behind
// a single mutex, so concurrent handlers cannot both miss an existing
// line and append a duplicate. Every mutation rewrites the full durable
// entry before it is considered complete; a failed write degrades
// durability, not in-session correctness, and is only logged.
type Store struct {
	mu    sync.RWMutex
	items []domain.LineItem
	open  bool

	repo repository.CartRepository
	log  *zap.SugaredLogger

	subMu sync.Mutex
	subs  []func()
}

func NewStore(repo repository.CartRepository, log *zap.SugaredLogger) *Store {
	return &Store{
		repo: repo,
		log:  log,
	}
}

// Initialize populates the cart from the durable store. A missing or
// unparseable entry means an empty cart, never a startup failure, and
// no re-write happens until the first mutation.
func (s *Store) Initialize(ctx context.Context) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			s.log.Warnw("stored cart unreadable, starting empty", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddToCart merges the product into the cart: an existing line for the
// same product id gains one more unit, otherwise a new line with
// quantity 1 is appended. Stock gating is the caller's concern.
func (s *Store) AddToCart(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.LineItem{Product: p, Quantity: 1})
	}
	s.writeThrough(ctx)
	s.mu.Unlock()

	s.notify()
}

// RemoveFromCart deletes the line for the given product id. Removing an
// absent id is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		s.writeThrough(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// IncreaseQuantity adds one unit to the matching line. Absent id is a
// no-op; the stock upper bound is enforced by the display surface.
func (s *Store) IncreaseQuantity(ctx context.Context, productID string) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity++
			changed = true
			break
		}
	}
	if changed {
		s.writeThrough(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// DecreaseQuantity removes one unit from the matching line, but never
// below 1: at quantity 1 it is a no-op, the line stays. Dropping a line
// entirely requires an explicit RemoveFromCart.
func (s *Store) DecreaseQuantity(ctx context.Context, productID string) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID && s.items[i].Quantity > 1 {
			s.items[i].Quantity--
			changed = true
			break
		}
	}
	if changed {
		s.writeThrough(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// ClearCart empties the cart. The aggregate itself stays alive.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.writeThrough(ctx)
	s.mu.Unlock()

	s.notify()
}

// ToggleVisibility flips the cart panel flag. Purely in-memory, never
// persisted.
func (s *Store) ToggleVisibility() {
	s.mu.Lock()
	s.open = !s.open
	s.mu.Unlock()

	s.notify()
}

// SetOpen sets the panel flag explicitly (the storefront closes the
// panel after checkout navigation rather than toggling it).
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	changed := s.open != open
	s.open = open
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItemCount is the sum of quantities over all lines.
func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, li := range s.items {
		total += li.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity over all lines. No rounding
// is applied here; formatting is a presentation concern.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, li := range s.items {
		total += li.Subtotal()
	}
	return total
}

// Subscribe registers a callback invoked after every completed
// mutation. Subscribers re-read accessors; no payload is delivered.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	s.subs = append(s.subs, fn)
	s.subMu.Unlock()
}

// writeThrough rewrites the whole durable entry. Callers hold the write
// lock, which also serializes saves. Failures degrade durability only.
func (s *Store) writeThrough(ctx context.Context) {
	snapshot := make([]domain.LineItem, len(s.items))
	copy(snapshot, s.items)
	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.log.Errorw("cart write-through failed", "error", err)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
