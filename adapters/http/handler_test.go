package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "eshop/adapters/http"
	"eshop/adapters/memory"
	"eshop/core"
)

type fixture struct {
	router  *gin.Engine
	service *core.ShippingService
	queue   *memory.ShippingQueue
	catalog *memory.ProductCatalog
}

func newFixture(products ...*core.Product) fixture {
	gin.SetMode(gin.TestMode)

	repo := memory.NewShippingRepository()
	queue := memory.NewShippingQueue()
	catalog := memory.NewProductCatalog(products...)
	service := core.NewShippingService(repo, queue)

	router := gin.New()
	httpAdapter.NewCheckoutHandler(catalog, service).Register(router)

	return fixture{router: router, service: service, queue: queue, catalog: catalog}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func orderBody(shippingType string, items ...map[string]any) map[string]any {
	return map[string]any{"shipping_type": shippingType, "items": items}
}

func TestPlaceOrder_Created(t *testing.T) {
	product := core.NewProduct("Milk", decimal.NewFromFloat(35.5), 10)
	f := newFixture(product)

	w := f.do(t, http.MethodPost, "/orders", orderBody(core.ShippingTypeStandard,
		map[string]any{"product": "Milk", "quantity": 9}))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		OrderID    string `json:"order_id"`
		ShippingID string `json:"shipping_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.NotEmpty(t, resp.ShippingID)

	assert.Equal(t, 1, product.AvailableAmount())
	assert.Equal(t, []string{resp.ShippingID}, f.queue.Messages())

	status, err := f.service.CheckStatus(context.Background(), resp.ShippingID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCreated, status)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/orders", orderBody(core.ShippingTypeStandard,
		map[string]any{"product": "Ghost", "quantity": 1}))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	product := core.NewProduct("Milk", decimal.NewFromFloat(35.5), 2)
	f := newFixture(product)

	w := f.do(t, http.MethodPost, "/orders", orderBody(core.ShippingTypeStandard,
		map[string]any{"product": "Milk", "quantity": 3}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 2, product.AvailableAmount())
	assert.Empty(t, f.queue.Messages())
}

func TestPlaceOrder_UnknownShippingType(t *testing.T) {
	product := core.NewProduct("Milk", decimal.NewFromFloat(35.5), 10)
	f := newFixture(product)

	w := f.do(t, http.MethodPost, "/orders", orderBody("carrier pigeon",
		map[string]any{"product": "Milk", "quantity": 1}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10, product.AvailableAmount(), "validation precedes stock mutation")
	assert.Empty(t, f.queue.Messages())
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	f := newFixture()
	w := f.do(t, http.MethodPost, "/orders", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrder_HonorsDueDate(t *testing.T) {
	product := core.NewProduct("Milk", decimal.NewFromFloat(35.5), 10)
	f := newFixture(product)

	due := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	body := orderBody(core.ShippingTypeOvernight, map[string]any{"product": "Milk", "quantity": 1})
	body["due_date"] = due.Format(time.RFC3339)
	body["order_id"] = "order-42"

	w := f.do(t, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order-42", resp.OrderID)
}

// snapshotCatalog mirrors the mongo catalog's shape: every GetProduct hands
// out a fresh product copy, so a stock change only becomes durable once
// SaveStock writes it back.
type snapshotCatalog struct {
	mu    sync.Mutex
	price map[string]decimal.Decimal
	stock map[string]int
}

func newSnapshotCatalog(products ...*core.Product) *snapshotCatalog {
	c := &snapshotCatalog{price: make(map[string]decimal.Decimal), stock: make(map[string]int)}
	for _, p := range products {
		c.price[p.Name()] = p.Price()
		c.stock[p.Name()] = p.AvailableAmount()
	}
	return c
}

func (c *snapshotCatalog) GetProduct(ctx context.Context, name string) (*core.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	amount, ok := c.stock[name]
	if !ok {
		return nil, core.ErrProductNotFound
	}
	return core.NewProduct(name, c.price[name], amount), nil
}

func (c *snapshotCatalog) SaveStock(ctx context.Context, product *core.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.price[product.Name()] = product.Price()
	c.stock[product.Name()] = product.AvailableAmount()
	return nil
}

func (c *snapshotCatalog) Stock(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stock[name]
}

type failingPublisher struct{ err error }

func (p failingPublisher) Send(ctx context.Context, shippingID string) error { return p.err }

func TestPlaceOrder_NotificationFailure_PersistsStock(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := memory.NewShippingRepository()
	catalog := newSnapshotCatalog(core.NewProduct("Milk", decimal.NewFromFloat(35.5), 10))
	service := core.NewShippingService(repo, failingPublisher{err: errors.New("broker down")})

	router := gin.New()
	httpAdapter.NewCheckoutHandler(catalog, service).Register(router)
	f := fixture{router: router, service: service}

	w := f.do(t, http.MethodPost, "/orders", orderBody(core.ShippingTypeStandard,
		map[string]any{"product": "Milk", "quantity": 9}))

	require.Equal(t, http.StatusBadGateway, w.Code, w.Body.String())

	var resp struct {
		OrderID    string `json:"order_id"`
		ShippingID string `json:"shipping_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ShippingID)

	// The record exists and the bought stock is durable; only the queue
	// notification is owed.
	record, err := repo.Get(context.Background(), resp.ShippingID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCreated, record.Status)
	assert.Equal(t, []string{"Milk"}, record.ProductIDs)
	assert.Equal(t, 1, catalog.Stock("Milk"))
}

func TestCheckShipmentStatus(t *testing.T) {
	f := newFixture()

	shippingID, err := f.service.CreateShipping(context.Background(), core.ShippingTypeStandard, []string{"Milk"}, "order-1", time.Now().Add(time.Minute))
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		w := f.do(t, http.MethodGet, fmt.Sprintf("/shipments/%s", shippingID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			ShippingID string `json:"shipping_id"`
			Status     string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, shippingID, resp.ShippingID)
		assert.Equal(t, string(core.StatusCreated), resp.Status)
	})

	t.Run("missing", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/shipments/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListShippingTypes(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodGet, "/shipping-types", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ShippingTypes []string `json:"shipping_types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.ShippingTypes, core.ShippingTypeStandard)
	assert.Contains(t, resp.ShippingTypes, core.ShippingTypePickup)
}
