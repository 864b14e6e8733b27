package notify

import "context"

// Delivery is a single queued message with manual acknowledgement. Ack
// removes the message from the queue; NackRequeue hands it back for a
// later redelivery.
type Delivery interface {
	Body() []byte
	Ack() error
	NackRequeue() error
}

// DeliverySource yields queued messages until the context is cancelled or
// the underlying transport closes, at which point the channel is closed.
type DeliverySource interface {
	Deliveries(ctx context.Context) (<-chan Delivery, error)
}
