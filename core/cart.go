package core

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

type cartEntry struct {
	product  *Product
	quantity int
}

// ShoppingCart maps products to requested quantities, keyed by product name.
// Adding the same product twice overwrites the quantity, it does not sum.
type ShoppingCart struct {
	mu      sync.Mutex
	entries map[string]cartEntry
}

func NewShoppingCart() *ShoppingCart {
	return &ShoppingCart{entries: make(map[string]cartEntry)}
}

// AddProduct puts the product in the cart with the given quantity, replacing
// any prior quantity for the same product name. Availability is checked only
// here, not re-checked at submission.
func (c *ShoppingCart) AddProduct(product *Product, amount int) error {
	if !product.IsAvailable(amount) {
		return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name())
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[product.Name()] = cartEntry{product: product, quantity: amount}
	return nil
}

// RemoveProduct deletes the product's entry. No-op when absent.
func (c *ShoppingCart) RemoveProduct(product *Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, product.Name())
}

func (c *ShoppingCart) ContainsProduct(product *Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[product.Name()]
	return ok
}

func (c *ShoppingCart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CalculateTotal sums price times quantity over the current entries. Prices
// are read live from the products, not snapshotted at add time.
func (c *ShoppingCart) CalculateTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, entry := range c.entries {
		total = total.Add(entry.product.Price().Mul(decimal.NewFromInt(int64(entry.quantity))))
	}
	return total
}

// SubmitCartOrder buys every entry's quantity from its product, collects the
// product names, and clears the cart. This is the sole bridge between cart
// state and stock depletion; the cart lock holds for the whole pass so a
// concurrent observer sees either the full cart or an empty one.
func (c *ShoppingCart) SubmitCartOrder() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	productIDs := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		entry.product.Buy(entry.quantity)
		productIDs = append(productIDs, entry.product.Name())
	}
	c.entries = make(map[string]cartEntry)
	return productIDs
}
