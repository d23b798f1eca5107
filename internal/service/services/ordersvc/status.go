package ordersvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feastly/order-svc/internal/service/models/order"
)

// UpdateStatus moves an order to a new status. The transition is checked
// against the primary record, then mirrored to both stores independently:
// a failure updating one store is logged and does not roll back the
// other. When both stores succeed, the relational copy is returned.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, next order.Status) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.UpdateStatus")
	defer span.End()

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := doc.Status
	if !previous.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", order.ErrInvalidTransition, previous, next)
	}

	updatedDoc, docErr := s.docs.UpdateStatus(ctx, id, next)
	if docErr != nil {
		slog.Error("Failed to update status on primary record", "order_id", id, "status", next, "error", docErr)
	}

	relErr := s.newUOW().OrderRepository().UpdateStatusByDocID(ctx, id, next)
	if relErr != nil {
		slog.Error("Failed to update status on relational order", "order_id", id, "status", next, "error", relErr)
	}

	if docErr != nil && relErr != nil {
		return nil, fmt.Errorf("failed to update order status in either store: %w", docErr)
	}

	result := updatedDoc
	if relErr == nil {
		if rel, err := s.relationalByDocID(ctx, id); err != nil {
			slog.Warn("Failed to read back relational order", "order_id", id, "error", err)
		} else if rel != nil {
			result = rel
		}
	}
	if result == nil {
		// The primary update failed and the relational copy could not be
		// read back. The relational status did change; surface the
		// primary failure instead of an empty result.
		return nil, fmt.Errorf("failed to read back order after status update: %w", docErr)
	}

	if s.events != nil {
		if err := s.events.OrderStatusChanged(result, previous); err != nil {
			slog.Warn("Failed to publish status changed event", "order_id", id, "error", err)
		}
	}

	return result, nil
}

// UpdatePaymentStatus mirrors a payment status change to both stores
// independently, same policy as UpdateStatus.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, next order.PaymentStatus) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.UpdatePaymentStatus")
	defer span.End()

	updatedDoc, docErr := s.docs.UpdatePaymentStatus(ctx, id, next)
	if docErr != nil {
		slog.Error("Failed to update payment status on primary record", "order_id", id, "payment_status", next, "error", docErr)
	}

	relErr := s.newUOW().OrderRepository().UpdatePaymentStatusByDocID(ctx, id, next)
	if relErr != nil {
		slog.Error("Failed to update payment status on relational order", "order_id", id, "payment_status", next, "error", relErr)
	}

	if docErr != nil && relErr != nil {
		return nil, fmt.Errorf("failed to update payment status in either store: %w", docErr)
	}

	if docErr == nil {
		return updatedDoc, nil
	}

	rel, err := s.relationalByDocID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, order.ErrNotFound
	}

	return rel, nil
}

// CancelOrder transitions a pending order to cancelled. The primary
// record is authoritative; the relational side is best-effort.
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*order.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.CancelOrder")
	defer span.End()

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc.Status != order.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", order.ErrCancelNotPending, doc.Status)
	}

	updated, err := s.docs.UpdateStatus(ctx, id, order.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	if err := s.newUOW().OrderRepository().UpdateStatusByDocID(ctx, id, order.StatusCancelled); err != nil {
		slog.Error("Failed to cancel relational order", "order_id", id, "error", err)
	}

	if s.events != nil {
		if err := s.events.OrderStatusChanged(updated, order.StatusPending); err != nil {
			slog.Warn("Failed to publish status changed event", "order_id", id, "error", err)
		}
	}

	return updated, nil
}
