package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/transport/http/converters"
	"github.com/feastly/order-svc/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

type service interface {
	UpdateStatus(ctx context.Context, id string, next order.Status) (*order.Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles the order status transition request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "orderId")

	req := updateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for update status", "error", err)

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	updated, err := service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			response.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrInvalidTransition):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, err.Error())
			slog.Error("Error updating order status", "order_id", id, "error", err)
		}

		return
	}

	response.Success(w, http.StatusOK, converters.OrderToResponse(updated))
}
