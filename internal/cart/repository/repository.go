package repository

import (
	"context"
	"errors"

	"github.com/Mederbek08/muslim-kg/internal/domain"
)

// ErrCartNotFound means the durable store holds no cart entry yet.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository is the durable mirror of the in-memory cart. The cart
// store is its sole writer; Save rewrites the whole entry every time.
// Consumers define this interface, not the bbolt implementation.
type CartRepository interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}
