package cancelorder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/transport/http/converters"
	"github.com/feastly/order-svc/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

type service interface {
	CancelOrder(ctx context.Context, id string) (*order.Order, error)
}

// CancelOrder handles the customer-initiated cancellation request.
// Only pending orders can be cancelled.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "orderId")

	cancelled, err := service.CancelOrder(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			response.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrCancelNotPending):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, err.Error())
			slog.Error("Error cancelling order", "order_id", id, "error", err)
		}

		return
	}

	response.Success(w, http.StatusOK, converters.OrderToResponse(cancelled))
}
