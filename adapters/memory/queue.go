package memory

import (
	"context"
	"sync"
)

// ShippingQueue is an in-memory queue implementing both core.ShippingPublisher
// and core.ShippingConsumer. Failed deliveries are requeued at the tail, which
// gives the same at-least-once shape as a real broker.
type ShippingQueue struct {
	mu       sync.Mutex
	messages []string
}

func NewShippingQueue() *ShippingQueue {
	return &ShippingQueue{}
}

func (q *ShippingQueue) Send(ctx context.Context, shippingID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, shippingID)
	return nil
}

// Consume delivers queued ids to the handler until the queue is empty or the
// context is cancelled. A handler error puts the id back at the tail.
func (q *ShippingQueue) Consume(ctx context.Context, handler func(shippingID string) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		shippingID, ok := q.pop()
		if !ok {
			return nil
		}
		if err := handler(shippingID); err != nil {
			q.mu.Lock()
			q.messages = append(q.messages, shippingID)
			q.mu.Unlock()
		}
	}
}

// Messages returns a snapshot of the pending ids in order.
func (q *ShippingQueue) Messages() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	snapshot := make([]string, len(q.messages))
	copy(snapshot, q.messages)
	return snapshot
}

func (q *ShippingQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return "", false
	}
	shippingID := q.messages[0]
	q.messages = q.messages[1:]
	return shippingID, true
}
