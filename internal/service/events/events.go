package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/feastly/order-svc/internal/dal/rabbitmq"
	"github.com/feastly/order-svc/internal/service/models/event"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Publisher publishes order events to RabbitMQ. All publishes are
// best-effort: callers log failures and move on.
type Publisher struct {
	client *rabbitmq.Client
	queue  string
}

// MustNewPublisher creates a publisher and declares its queue.
func MustNewPublisher(client *rabbitmq.Client, queue string) *Publisher {
	if _, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queue,
		Durable: true,
	}); err != nil {
		panic(fmt.Sprintf("Failed to declare queue %s: %v", queue, err))
	}

	return &Publisher{
		client: client,
		queue:  queue,
	}
}

// OrderCreated publishes an order.created event.
func (p *Publisher) OrderCreated(o *order.Order) error {
	return p.publish(event.OrderEvent{
		ID:         uuid.NewString(),
		Type:       event.TypeOrderCreated,
		OrderID:    o.ID,
		SQLOrderID: o.SQLOrderID,
		Status:     o.Status.String(),
		TotalCents: o.TotalCents,
		OccurredAt: time.Now(),
	})
}

// OrderStatusChanged publishes an order.status_changed event.
func (p *Publisher) OrderStatusChanged(o *order.Order, previous order.Status) error {
	return p.publish(event.OrderEvent{
		ID:             uuid.NewString(),
		Type:           event.TypeOrderStatusChanged,
		OrderID:        o.ID,
		SQLOrderID:     o.SQLOrderID,
		Status:         o.Status.String(),
		PreviousStatus: previous.String(),
		TotalCents:     o.TotalCents,
		OccurredAt:     time.Now(),
	})
}

func (p *Publisher) publish(evt event.OrderEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.client.Channel().Publish(
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
