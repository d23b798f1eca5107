package updatepaymentstatus

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
	UpdatePaymentStatus(ctx context.Context, id string, next order.PaymentStatus) (*order.Order, error)
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// UpdatePaymentStatus handles the payment status update request.
func UpdatePaymentStatus(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "orderId")

	req := updatePaymentStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for update payment status", "error", err)

		return
	}

	status, err := order.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())

		return
	}

	updated, err := service.UpdatePaymentStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err.Error())

			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		slog.Error("Error updating payment status", "order_id", id, "error", err)

		return
	}

	response.Success(w, http.StatusOK, converters.OrderToResponse(updated))
}
