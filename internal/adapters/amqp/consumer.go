package amqp

import (
	"context"
	"fmt"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/William9701/user-service/internal/notify"
)

// Consumer reads welcome mail jobs from a durable queue with manual
// acknowledgement. It implements notify.DeliverySource.
type Consumer struct {
	ch       Channel
	queue    string
	prefetch int
}

// NewConsumer declares the queue as durable and applies the prefetch limit
// to the channel. A prefetch below 1 defaults to 1 so a slow mailer never
// hoards undelivered messages.
func NewConsumer(ch Channel, queue string, prefetch int) (*Consumer, error) {
	if ch == nil {
		return nil, fmt.Errorf("amqp: channel is required")
	}
	if queue == "" {
		return nil, fmt.Errorf("amqp: queue name is required")
	}
	if prefetch < 1 {
		prefetch = 1
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("amqp: declare queue %q: %w", queue, err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("amqp: set qos: %w", err)
	}
	return &Consumer{ch: ch, queue: queue, prefetch: prefetch}, nil
}

// Deliveries starts consuming and adapts broker deliveries to
// notify.Delivery. The returned channel closes when the broker channel
// closes or the context is cancelled.
func (c *Consumer) Deliveries(ctx context.Context) (<-chan notify.Delivery, error) {
	msgs, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("amqp: consume %q: %w", c.queue, err)
	}

	out := make(chan notify.Delivery)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- delivery{d: msg}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type delivery struct {
	d amqp091.Delivery
}

func (w delivery) Body() []byte { return w.d.Body }

func (w delivery) Ack() error { return w.d.Ack(false) }

func (w delivery) NackRequeue() error { return w.d.Nack(false, true) }
