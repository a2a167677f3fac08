package memory

import (
	"context"
	"sync"

	"eshop/core"
)

// ShippingRepository is an in-memory core.ShippingRepository for tests and
// local runs.
type ShippingRepository struct {
	mu      sync.RWMutex
	records map[string]core.ShipmentRecord
}

func NewShippingRepository() *ShippingRepository {
	return &ShippingRepository{records: make(map[string]core.ShipmentRecord)}
}

func (r *ShippingRepository) Put(ctx context.Context, record core.ShipmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ShippingID] = record
	return nil
}

func (r *ShippingRepository) Get(ctx context.Context, shippingID string) (core.ShipmentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[shippingID]
	if !ok {
		return core.ShipmentRecord{}, core.ErrShipmentNotFound
	}
	return record, nil
}

// Len reports how many records are stored.
func (r *ShippingRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
