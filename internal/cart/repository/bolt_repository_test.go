package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/Mederbek08/muslim-kg/internal/domain"
)

func setupRepo(t *testing.T) (CartRepository, *bolt.DB) {
	t.Helper()
	repo, db, err := NewBoltRepository(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repo, db
}

func putRaw(t *testing.T, db *bolt.DB, raw []byte) {
	t.Helper()
	err := db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(itemsKey, raw)
	})
	require.NoError(t, err)
}

func TestLoad_NoEntry(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	items := []domain.LineItem{
		{
			Product: domain.Product{
				ID:       "A",
				Title:    "Widget",
				Price:    100,
				Stock:    5,
				Category: "tools",
				ImageURL: "https://example.com/widget.png",
			},
			Quantity: 2,
		},
		{
			Product:  domain.Product{ID: "B", Title: "Gadget", Price: 50, Stock: 3},
			Quantity: 1,
		},
	}

	require.NoError(t, repo.Save(ctx, items))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestSave_RewritesWholeEntry(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []domain.LineItem{
		{Product: domain.Product{ID: "A", Title: "Widget", Price: 100}, Quantity: 2},
		{Product: domain.Product{ID: "B", Title: "Gadget", Price: 50}, Quantity: 1},
	}))
	require.NoError(t, repo.Save(ctx, []domain.LineItem{
		{Product: domain.Product{ID: "B", Title: "Gadget", Price: 50}, Quantity: 1},
	}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "B", loaded[0].Product.ID)
}

func TestLoad_DropsEntriesWithoutQuantityOrID(t *testing.T) {
	repo, db := setupRepo(t)

	putRaw(t, db, []byte(`[
		{"id":"A","title":"Widget","price":100,"quantity":2},
		{"id":"B","title":"No quantity","price":50},
		{"title":"No id","price":10,"quantity":1},
		{"id":"C","title":"Zero","price":10,"quantity":0}
	]`))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "A", loaded[0].Product.ID)
	assert.Equal(t, 2, loaded[0].Quantity)
}

func TestLoad_IgnoresUnknownExtraFields(t *testing.T) {
	repo, db := setupRepo(t)

	// Legacy writers copied arbitrary product fields into the entry.
	putRaw(t, db, []byte(`[
		{"id":"A","title":"Widget","price":100,"stock":4,"quantity":2,"discount":0.1,"tags":["new"]}
	]`))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Widget", loaded[0].Product.Title)
	assert.Equal(t, 4, loaded[0].Product.Stock)
}

func TestLoad_MalformedEntry(t *testing.T) {
	repo, db := setupRepo(t)

	putRaw(t, db, []byte(`{"not":"an array`))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartNotFound)
}

func TestSave_EmptyList(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, nil))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// The entry exists and holds an empty array, not null.
	var raw []byte
	db.View(func(tx *bolt.Tx) error {
		raw = tx.Bucket(bucketName).Get(itemsKey)
		return nil
	})
	var decoded []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Empty(t, decoded)
}
