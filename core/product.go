package core

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Identity is the name alone: two products with
// the same name are the same cart key even when price or stock differ.
type Product struct {
	mu              sync.Mutex
	name            string
	price           decimal.Decimal
	availableAmount int
}

func NewProduct(name string, price decimal.Decimal, availableAmount int) *Product {
	return &Product{
		name:            name,
		price:           price,
		availableAmount: availableAmount,
	}
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.price
}

// SetPrice changes the unit price. Carts read the price live, so totals
// computed after this call reflect the new price.
func (p *Product) SetPrice(price decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.price = price
}

func (p *Product) AvailableAmount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.availableAmount
}

// IsAvailable reports whether the requested amount is in stock. Pure query.
func (p *Product) IsAvailable(requestedAmount int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.availableAmount >= requestedAmount
}

// Buy subtracts the requested amount from stock unconditionally. The caller
// must have checked availability first; buying more than is in stock drives
// the amount negative. Concurrent callers should use TryBuy instead.
func (p *Product) Buy(requestedAmount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.availableAmount -= requestedAmount
}

// TryBuy atomically decrements stock when the requested amount is available
// and reports whether the purchase happened. Check and mutation run under one
// lock, so concurrent buyers can never drive stock negative through it.
func (p *Product) TryBuy(requestedAmount int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.availableAmount < requestedAmount {
		return false
	}
	p.availableAmount -= requestedAmount
	return true
}
