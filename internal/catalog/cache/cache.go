package cache

import (
	"context"
	"errors"

	"github.com/Mederbek08/muslim-kg/internal/domain"
)

// ProductCache caches the full product list. The catalog is small, so
// the cached value is the whole listing, invalidated on any admin
// write.
type ProductCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
