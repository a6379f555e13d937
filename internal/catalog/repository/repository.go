package repository

import (
	"context"
	"errors"

	"github.com/Mederbek08/muslim-kg/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the catalog data operations. Consumers
// define this interface, not the MongoDB implementation.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}
