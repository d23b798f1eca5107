package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/feastly/order-svc/internal/service/models/customer"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/service/models/orderitem"
)

// WarningMirrorDegraded is returned alongside a successful submission
// when the relational mirror could not be written. The primary record
// is durable either way.
const WarningMirrorDegraded = "order recorded; reporting copy is temporarily unavailable"

// SubmitOrder records one logical order across both stores. The
// document-store write is mandatory: its failure fails the whole call.
// The relational mirror is best-effort: its failure is logged, marked
// on the primary record and surfaced only as a warning.
func (s *OrderService) SubmitOrder(ctx context.Context, o order.Order) (*order.Order, string, error) {
	ctx, span := tracer.Start(ctx, "OrderService.SubmitOrder")
	defer span.End()

	if err := o.Validate(); err != nil {
		return nil, "", err
	}

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	o.Status = order.StatusPending
	o.PaymentStatus = order.PaymentCompleted // payment capture is simulated
	o.Mirror = order.Mirror{State: order.MirrorStatePending, UpdatedAt: now}

	id, err := s.docs.Insert(ctx, &o)
	if err != nil {
		return nil, "", fmt.Errorf("failed to write primary order record: %w", err)
	}
	o.ID = id

	warning := ""
	if err := s.MirrorOrder(ctx, &o); err != nil {
		slog.Error("Failed to mirror order to relational store", "order_id", o.ID, "error", err)
		warning = WarningMirrorDegraded

		if stateErr := s.docs.SetMirrorState(ctx, o.ID, order.MirrorStateFailed, err.Error()); stateErr != nil {
			slog.Error("Failed to record mirror failure on primary record", "order_id", o.ID, "error", stateErr)
		}
		o.Mirror = order.Mirror{State: order.MirrorStateFailed, Error: err.Error(), UpdatedAt: time.Now()}
	}

	if s.events != nil {
		if err := s.events.OrderCreated(&o); err != nil {
			slog.Warn("Failed to publish order created event", "order_id", o.ID, "error", err)
		}
	}

	return &o, warning, nil
}

// MirrorOrder writes the relational copy of an order: customer dedup,
// then the header and all items in one transaction, then the
// cross-reference patch on the primary record. Idempotent: when the
// relational order already exists it only re-attaches the id, so the
// backfill worker can retry it safely.
func (s *OrderService) MirrorOrder(ctx context.Context, o *order.Order) error {
	ctx, span := tracer.Start(ctx, "OrderService.MirrorOrder")
	defer span.End()

	work := s.newUOW()

	existing, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		DocIds: []string{o.ID},
		Limit:  1,
	})
	if err != nil {
		return fmt.Errorf("failed to check for existing relational order: %w", err)
	}
	if len(existing) > 0 {
		o.SQLOrderID = existing[0].SQLOrderID
		o.CustomerID = existing[0].CustomerID

		if err := s.docs.AttachSQLOrderID(ctx, o.ID, o.SQLOrderID); err != nil {
			return fmt.Errorf("failed to attach relational order id: %w", err)
		}
		o.Mirror = order.Mirror{State: order.MirrorStateSynced, UpdatedAt: time.Now()}

		return nil
	}

	cust, err := s.customers.FindOrCreate(ctx, snapshotToCustomer(o))
	if err != nil {
		return fmt.Errorf("failed to resolve customer: %w", err)
	}
	o.CustomerID = cust.ID

	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	sqlID, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		if rbErr := work.Rollback(ctx); rbErr != nil {
			slog.Error("Failed to roll back mirror transaction", "order_id", o.ID, "error", rbErr)
		}

		return fmt.Errorf("failed to insert relational order: %w", err)
	}

	items := make([]orderitem.OrderItem, len(o.OrderItems))
	for i, item := range o.OrderItems {
		item.OrderID = sqlID
		item.CreatedAt = o.CreatedAt
		item.UpdatedAt = o.UpdatedAt
		items[i] = item
	}
	if _, err := work.OrderItemRepository().BulkInsert(ctx, items); err != nil {
		if rbErr := work.Rollback(ctx); rbErr != nil {
			slog.Error("Failed to roll back mirror transaction", "order_id", o.ID, "error", rbErr)
		}

		return fmt.Errorf("failed to insert relational order items: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit mirror transaction: %w", err)
	}
	o.SQLOrderID = sqlID

	if err := s.docs.AttachSQLOrderID(ctx, o.ID, sqlID); err != nil {
		// The relational copy exists; only the cross-reference is missing.
		// A retry finds the row by doc id and re-attaches.
		return fmt.Errorf("failed to attach relational order id: %w", err)
	}
	o.Mirror = order.Mirror{State: order.MirrorStateSynced, UpdatedAt: time.Now()}

	return nil
}

func snapshotToCustomer(o *order.Order) customer.Customer {
	return customer.Customer{
		Name:    o.Customer.Name,
		Email:   o.Customer.Email,
		Phone:   o.Customer.Phone,
		Address: o.Customer.Address,
	}
}
