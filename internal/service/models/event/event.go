package event

import (
	"time"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the message published to the broker when an order is
// created or changes status.
type OrderEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	SQLOrderID     int64     `json:"sqlOrderId,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	TotalCents     int64     `json:"totalCents"`
	OccurredAt     time.Time `json:"occurredAt"`
}
