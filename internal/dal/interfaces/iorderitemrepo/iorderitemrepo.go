package iorderitemrepo

import (
	"context"

	"github.com/feastly/order-svc/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for the relational order item repository.
type IOrderItemRepository interface {
	// BulkInsert inserts all items in one statement and returns them
	// with generated ids.
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)

	// Query retrieves order items based on filter criteria.
	Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)
}
