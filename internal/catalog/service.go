// Package catalog reads and administers the product collection. Reads
// go through a cache-aside listing; admin writes go straight to the
// repository and invalidate the cached listing.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Mederbek08/muslim-kg/internal/catalog/cache"
	"github.com/Mederbek08/muslim-kg/internal/catalog/repository"
	"github.com/Mederbek08/muslim-kg/internal/domain"
)

type Service struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	log   *zap.SugaredLogger
	sfg   singleflight.Group // prevents cache stampede on the listing
}

func NewService(repo repository.ProductRepository, cache cache.ProductCache, log *zap.SugaredLogger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List returns the product listing, from cache when possible. Cache
// errors are logged and the repository answers instead.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warnw("catalog cache get failed", "error", err)
		}

		products, err = s.repo.List(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, products); err != nil {
				s.log.Warnw("catalog cache set failed", "error", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new product, assigning an id when the caller did not
// provide one.
func (s *Service) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	s.invalidate()
	return p, nil
}

func (s *Service) Update(ctx context.Context, p domain.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		s.log.Warnw("catalog cache invalidate failed", "error", err)
	}
}
