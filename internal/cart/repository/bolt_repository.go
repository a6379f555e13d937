package repository

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/Mederbek08/muslim-kg/internal/domain"
)

var (
	bucketName = []byte("cart")
	itemsKey   = []byte("items")
)

// storedItem is the persisted wire shape: a flat record carrying the
// product snapshot fields alongside the quantity. Unknown extra fields
// from older writers are ignored on load.
type storedItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
}

type boltRepository struct {
	db *bolt.DB
}

// NewBoltRepository opens (or creates) the cart database file and
// ensures the cart bucket exists.
func NewBoltRepository(path string) (CartRepository, *bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cart database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, errBucket := tx.CreateBucketIfNotExists(bucketName)
		return errBucket
	})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create cart bucket: %w", err)
	}

	return &boltRepository{db: db}, db, nil
}

func (r *boltRepository) Load(_ context.Context) ([]domain.LineItem, error) {
	var raw []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(itemsKey); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read cart entry: %w", err)
	}
	if raw == nil {
		return nil, ErrCartNotFound
	}

	var stored []storedItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode cart entry: %w", err)
	}

	items := make([]domain.LineItem, 0, len(stored))
	for _, s := range stored {
		// Entries from older or partial writes may lack a quantity or
		// an id; they are dropped, not fatal for the rest of the cart.
		if s.ID == "" || s.Quantity < 1 {
			continue
		}
		items = append(items, domain.LineItem{
			Product: domain.Product{
				ID:          s.ID,
				Title:       s.Title,
				Price:       s.Price,
				Stock:       s.Stock,
				Category:    s.Category,
				ImageURL:    s.ImageURL,
				Description: s.Description,
			},
			Quantity: s.Quantity,
		})
	}
	return items, nil
}

func (r *boltRepository) Save(_ context.Context, items []domain.LineItem) error {
	stored := make([]storedItem, 0, len(items))
	for _, li := range items {
		stored = append(stored, storedItem{
			ID:          li.Product.ID,
			Title:       li.Product.Title,
			Price:       li.Product.Price,
			Stock:       li.Product.Stock,
			Category:    li.Product.Category,
			ImageURL:    li.Product.ImageURL,
			Description: li.Product.Description,
			Quantity:    li.Quantity,
		})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode cart entry: %w", err)
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(itemsKey, raw)
	})
	if err != nil {
		return fmt.Errorf("failed to write cart entry: %w", err)
	}
	return nil
}
