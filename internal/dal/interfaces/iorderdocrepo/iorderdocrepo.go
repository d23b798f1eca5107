package iorderdocrepo

import (
	"context"
	"time"

	"github.com/feastly/order-svc/internal/service/models/order"
)

// IOrderDocRepository defines the operations on the primary order record
// in the document store.
type IOrderDocRepository interface {
	// Insert writes the primary order record and returns the generated id.
	Insert(ctx context.Context, o *order.Order) (string, error)

	// FindByID returns the order with the given id, or order.ErrNotFound.
	FindByID(ctx context.Context, id string) (*order.Order, error)

	// FindByMirrorState returns orders whose relational mirror is in the
	// given state and was last touched before the cutoff.
	FindByMirrorState(ctx context.Context, state order.MirrorState, before time.Time, limit int) ([]order.Order, error)

	// AttachSQLOrderID records the relational order id on the primary
	// record and marks the mirror synced. Safe to retry.
	AttachSQLOrderID(ctx context.Context, id string, sqlOrderID int64) error

	// SetMirrorState records the mirror outcome on the primary record.
	SetMirrorState(ctx context.Context, id string, state order.MirrorState, errMsg string) error

	// UpdateStatus sets the order status and returns the updated record.
	UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)

	// UpdatePaymentStatus sets the payment status and returns the updated record.
	UpdatePaymentStatus(ctx context.Context, id string, status order.PaymentStatus) (*order.Order, error)
}
