package rabbitmq

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"eshop/core"
)

type consumer struct {
	ch    *amqp.Channel
	queue string
}

// NewConsumer creates a core.ShippingConsumer reading shipping ids from the
// queue with manual acks. A handler error nacks the delivery back onto the
// queue, so processing is at-least-once.
func NewConsumer(ch *amqp.Channel, queue string) (core.ShippingConsumer, error) {
	if err := declareQueue(ch, queue); err != nil {
		return nil, err
	}
	return &consumer{ch: ch, queue: queue}, nil
}

func (c *consumer) Consume(ctx context.Context, handler func(shippingID string) error) error {
	deliveries, err := c.ch.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("could not consume from queue %s: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for queue %s closed", c.queue)
			}
			shippingID := string(delivery.Body)
			if err := handler(shippingID); err != nil {
				log.Printf("requeue shipment %s: %v", shippingID, err)
				if err := delivery.Nack(false, true); err != nil {
					return fmt.Errorf("nack shipment %s: %w", shippingID, err)
				}
				continue
			}
			if err := delivery.Ack(false); err != nil {
				return fmt.Errorf("ack shipment %s: %w", shippingID, err)
			}
		}
	}
}
