package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"eshop/core"
)

type publisher struct {
	ch    *amqp.Channel
	queue string
}

// NewPublisher creates a core.ShippingPublisher that enqueues shipping ids on
// a durable queue. The message body is the bare id string.
func NewPublisher(ch *amqp.Channel, queue string) (core.ShippingPublisher, error) {
	if err := declareQueue(ch, queue); err != nil {
		return nil, err
	}
	return &publisher{ch: ch, queue: queue}, nil
}

func (p *publisher) Send(ctx context.Context, shippingID string) error {
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "text/plain",
			DeliveryMode: amqp.Persistent,
			Body:         []byte(shippingID),
		},
	)
}
