package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/cart"
	cartrepo "github.com/Mederbek08/muslim-kg/internal/cart/repository"
	catalogrepo "github.com/Mederbek08/muslim-kg/internal/catalog/repository"
	"github.com/Mederbek08/muslim-kg/internal/domain"
)

type memoryCartRepo struct{}

func (memoryCartRepo) Load(context.Context) ([]domain.LineItem, error) {
	return nil, cartrepo.ErrCartNotFound
}
func (memoryCartRepo) Save(context.Context, []domain.LineItem) error { return nil }

type catalogStub struct {
	products map[string]domain.Product
	err      error
}

func (c catalogStub) List(context.Context) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out, nil
}

func (c catalogStub) Get(_ context.Context, id string) (domain.Product, error) {
	if c.err != nil {
		return domain.Product{}, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, catalogrepo.ErrProductNotFound
	}
	return p, nil
}

func (c catalogStub) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	return p, c.err
}
func (c catalogStub) Update(context.Context, domain.Product) error { return c.err }
func (c catalogStub) Delete(context.Context, string) error         { return c.err }

func newCartTestRouter(store *cart.Store, catalog Catalog) http.Handler {
	h := NewCartHandler(store, catalog, zap.NewNop().Sugar())
	r := chi.NewRouter()
	r.Get("/cart", h.Get)
	r.Post("/cart/items", h.AddItem)
	r.Post("/cart/items/{product_id}/increase", h.IncreaseQuantity)
	r.Post("/cart/items/{product_id}/decrease", h.DecreaseQuantity)
	r.Delete("/cart/items/{product_id}", h.RemoveItem)
	r.Delete("/cart", h.Clear)
	return r
}

func addItemBody(t *testing.T, productID string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(AddItemRequestDTO{ProductID: productID})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) CartResponseDTO {
	t.Helper()
	var dto CartResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	return dto
}

func TestAddItem_Success(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	catalog := catalogStub{products: map[string]domain.Product{
		"A": {ID: "A", Title: "Widget", Price: 100, Stock: 3},
	}}
	router := newCartTestRouter(store, catalog)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", addItemBody(t, "A")))

	require.Equal(t, http.StatusCreated, rec.Code)
	dto := decodeCart(t, rec)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 1, dto.Items[0].Quantity)
	assert.Equal(t, 100.0, dto.TotalPrice)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	router := newCartTestRouter(store, catalogStub{products: map[string]domain.Product{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", addItemBody(t, "missing")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.Items())
}

func TestAddItem_StockGate(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	catalog := catalogStub{products: map[string]domain.Product{
		"A": {ID: "A", Title: "Widget", Price: 100, Stock: 2},
	}}
	router := newCartTestRouter(store, catalog)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", addItemBody(t, "A")))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// Third add would exceed stock; the handler refuses, the store is
	// left untouched.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", addItemBody(t, "A")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.Len(t, store.Items(), 1)
	assert.Equal(t, 2, store.Items()[0].Quantity)
}

func TestAddItem_ZeroStockProduct(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	catalog := catalogStub{products: map[string]domain.Product{
		"A": {ID: "A", Title: "Widget", Price: 100, Stock: 0},
	}}
	router := newCartTestRouter(store, catalog)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", addItemBody(t, "A")))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddItem_InvalidBody(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	router := newCartTestRouter(store, catalogStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader([]byte("{"))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIncreaseQuantity_StockGate(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	store.AddToCart(context.Background(), domain.Product{ID: "A", Title: "Widget", Price: 100, Stock: 1})
	router := newCartTestRouter(store, catalogStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items/A/increase", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestDecreaseQuantity_AtOneKeepsItem(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	store.AddToCart(context.Background(), domain.Product{ID: "A", Title: "Widget", Price: 100, Stock: 5})
	router := newCartTestRouter(store, catalogStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items/A/decrease", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	dto := decodeCart(t, rec)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 1, dto.Items[0].Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	ctx := context.Background()
	store.AddToCart(ctx, domain.Product{ID: "A", Title: "Widget", Price: 100, Stock: 5})
	store.AddToCart(ctx, domain.Product{ID: "B", Title: "Gadget", Price: 50, Stock: 5})
	router := newCartTestRouter(store, catalogStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/items/A", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.Items(), 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.Items())
}

func TestGetCart(t *testing.T) {
	store := cart.NewStore(memoryCartRepo{}, zap.NewNop().Sugar())
	ctx := context.Background()
	store.AddToCart(ctx, domain.Product{ID: "A", Title: "Widget", Price: 100, Stock: 5})
	store.AddToCart(ctx, domain.Product{ID: "A", Title: "Widget", Price: 100, Stock: 5})
	router := newCartTestRouter(store, catalogStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	dto := decodeCart(t, rec)
	assert.Equal(t, 2, dto.TotalItems)
	assert.Equal(t, 200.0, dto.TotalPrice)
}
