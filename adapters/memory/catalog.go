package memory

import (
	"context"
	"sync"

	"eshop/core"
)

// ProductCatalog is an in-memory core.ProductCatalog keyed by product name.
type ProductCatalog struct {
	mu       sync.RWMutex
	products map[string]*core.Product
}

func NewProductCatalog(products ...*core.Product) *ProductCatalog {
	c := &ProductCatalog{products: make(map[string]*core.Product)}
	for _, p := range products {
		c.products[p.Name()] = p
	}
	return c
}

func (c *ProductCatalog) GetProduct(ctx context.Context, name string) (*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[name]
	if !ok {
		return nil, core.ErrProductNotFound
	}
	return product, nil
}

func (c *ProductCatalog) SaveStock(ctx context.Context, product *core.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.Name()] = product
	return nil
}
