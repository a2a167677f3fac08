package core

import "errors"

var (
	// ErrInsufficientStock rejects a cart add that exceeds available stock.
	ErrInsufficientStock = errors.New("not enough items")

	// ErrShippingTypeNotAvailable rejects a shipment with an unrecognized
	// shipping type before any side effect.
	ErrShippingTypeNotAvailable = errors.New("shipping type is not available")

	// ErrShipmentNotFound is returned by status lookups for unknown ids.
	ErrShipmentNotFound = errors.New("shipment not found")

	// ErrProductNotFound is returned by catalog lookups for unknown names.
	ErrProductNotFound = errors.New("product not found")

	// ErrNotificationFailed means the shipment record was persisted but the
	// queue publish failed. The shipment exists; the notification is owed and
	// the send can be retried by the caller.
	ErrNotificationFailed = errors.New("shipment notification failed")
)
