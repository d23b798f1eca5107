package getorder

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
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// GetOrder handles the fetch of one primary order record.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "orderId")

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err.Error())

			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		slog.Error("Error getting order", "order_id", id, "error", err)

		return
	}

	response.Success(w, http.StatusOK, converters.OrderToResponse(o))
}
