// Package amqp provides RabbitMQ-backed adapters for the welcome mail queue.
package amqp

import (
	"context"
	"fmt"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/William9701/user-service/internal/notify"
)

// Channel is the subset of amqp091.Channel the adapters use.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
}

// Publisher enqueues welcome mail jobs onto a durable queue via the default
// exchange. Messages are published persistent so they survive broker restarts.
type Publisher struct {
	ch    Channel
	queue string
}

// NewPublisher declares the queue as durable and returns a publisher bound
// to it. Declaration is idempotent; publisher and consumer both declare so
// startup order does not matter.
func NewPublisher(ch Channel, queue string) (*Publisher, error) {
	if ch == nil {
		return nil, fmt.Errorf("amqp: channel is required")
	}
	if queue == "" {
		return nil, fmt.Errorf("amqp: queue name is required")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("amqp: declare queue %q: %w", queue, err)
	}
	return &Publisher{ch: ch, queue: queue}, nil
}

// Publish enqueues a welcome job for the given address.
func (p *Publisher) Publish(ctx context.Context, email string) error {
	body, err := notify.EncodeJob(notify.Job{Email: email})
	if err != nil {
		return fmt.Errorf("amqp: encode job: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp: publish to %q: %w", p.queue, err)
	}
	return nil
}
