package core

import (
	"context"
	"time"
)

// Status of a shipment. The placement protocol only ever writes
// StatusCreated; the remaining transitions belong to fulfillment.
type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ShipmentRecord is the persisted shape of a dispatched shipment, keyed by
// shipping id.
type ShipmentRecord struct {
	ShippingID   string    `bson:"_id" json:"shipping_id"`
	ShippingType string    `bson:"shipping_type" json:"shipping_type"`
	ProductIDs   []string  `bson:"product_ids" json:"product_ids"`
	OrderID      string    `bson:"order_id" json:"order_id"`
	Status       Status    `bson:"status" json:"status"`
	DueDate      time.Time `bson:"due_date" json:"due_date"`
}

// Shipment is a stateless handle for querying a previously created shipment.
type Shipment struct {
	ShippingID string
	Service    *ShippingService
}

// CheckShippingStatus delegates to the service. No caching.
func (s Shipment) CheckShippingStatus(ctx context.Context) (Status, error) {
	return s.Service.CheckStatus(ctx, s.ShippingID)
}
