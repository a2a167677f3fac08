package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// defaultDueIn is the grace period applied when the caller does not supply a
// due date.
const defaultDueIn = 3 * time.Second

// Order binds one cart to one shipping service under a unique order id.
// Orders are ephemeral: constructed, placed once, discarded. Placement is
// not idempotent; replaying it re-submits an already emptied cart.
type Order struct {
	cart    *ShoppingCart
	service *ShippingService
	id      string
}

// NewOrder builds an order for the cart. An empty orderID gets a generated
// unique token.
func NewOrder(cart *ShoppingCart, service *ShippingService, orderID string) *Order {
	if orderID == "" {
		orderID = uuid.New().String()
	}
	return &Order{cart: cart, service: service, id: orderID}
}

func (o *Order) ID() string {
	return o.id
}

// PlaceOrder converts the cart into a dispatched shipment and returns the
// shipping id. A zero dueDate defaults to now plus a short grace period.
//
// The shipping type is validated before the cart is drained, so a rejected
// type leaves cart and stock untouched. Errors from the service propagate
// unchanged.
func (o *Order) PlaceOrder(ctx context.Context, shippingType string, dueDate time.Time) (string, error) {
	if dueDate.IsZero() {
		dueDate = time.Now().UTC().Add(defaultDueIn)
	}
	if !o.service.IsShippingTypeAvailable(shippingType) {
		return "", fmt.Errorf("%w: %q", ErrShippingTypeNotAvailable, shippingType)
	}
	productIDs := o.cart.SubmitCartOrder()
	return o.service.CreateShipping(ctx, shippingType, productIDs, o.id, dueDate)
}
