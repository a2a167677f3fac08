package core

import "context"

// Capability interfaces the checkout core depends on. Implementations are
// injected at wiring time; the core never reaches for a global backend.

// ShippingRepository is a durable key-value store for shipment records.
type ShippingRepository interface {
	// Put writes the record under its shipping id, replacing any prior value.
	Put(ctx context.Context, record ShipmentRecord) error
	// Get returns the record for the id, or an error wrapping
	// ErrShipmentNotFound when absent.
	Get(ctx context.Context, shippingID string) (ShipmentRecord, error)
}

// ShippingPublisher announces new shipment ids to downstream consumers.
// Delivery is at-least-once; the message body is the bare id string.
type ShippingPublisher interface {
	Send(ctx context.Context, shippingID string) error
}

// ShippingConsumer feeds announced shipment ids to a handler. A handler
// error means the delivery must be retried.
type ShippingConsumer interface {
	Consume(ctx context.Context, handler func(shippingID string) error) error
}

// ProductCatalog resolves products by name for callers that assemble carts,
// and persists stock changes after a purchase.
type ProductCatalog interface {
	GetProduct(ctx context.Context, name string) (*Product, error)
	SaveStock(ctx context.Context, product *Product) error
}
