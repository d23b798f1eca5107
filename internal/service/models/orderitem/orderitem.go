package orderitem

import (
	"time"
)

// OrderItem represents a single line of an order.
type OrderItem struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"orderId"`
	ProductID    string    `json:"productId"`
	ProductTitle string    `json:"productTitle"`
	Quantity     int       `json:"quantity"`
	PriceCents   int64     `json:"priceCents"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
