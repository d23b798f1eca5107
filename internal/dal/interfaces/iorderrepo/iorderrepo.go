package iorderrepo

import (
	"context"

	"github.com/feastly/order-svc/internal/service/models/order"
)

// IOrderRepository is an interface for the relational order repository.
type IOrderRepository interface {
	// Insert writes the order header and returns the generated id.
	Insert(ctx context.Context, o *order.Order) (int64, error)

	// Query retrieves order headers based on filter criteria.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// UpdateStatusByDocID sets the status of the order mirroring the
	// given primary record.
	UpdateStatusByDocID(ctx context.Context, docID string, status order.Status) error

	// UpdatePaymentStatusByDocID sets the payment status of the order
	// mirroring the given primary record.
	UpdatePaymentStatusByDocID(ctx context.Context, docID string, status order.PaymentStatus) error
}
