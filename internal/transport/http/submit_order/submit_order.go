package submitorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/feastly/order-svc/internal/service/models/currency"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/service/models/orderitem"
	"github.com/feastly/order-svc/internal/transport/http/converters"
	"github.com/feastly/order-svc/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	SubmitOrder(ctx context.Context, o order.Order) (*order.Order, string, error)
}

// customerInfoRequest is the customer block of a submit order request.
type customerInfoRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// itemInSubmitOrderRequest represents an item in a submit order request.
type itemInSubmitOrderRequest struct {
	ProductID string  `json:"_id"      validate:"required"`
	Name      string  `json:"name"     validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	Price     float64 `json:"price"    validate:"gte=0"`
	Category  string  `json:"category"`
}

// paymentInfoRequest is the payment block of a submit order request.
type paymentInfoRequest struct {
	CardNumber    string `json:"cardNumber"`
	PaymentMethod string `json:"paymentMethod"`
}

// submitOrderRequest represents a submit order request.
type submitOrderRequest struct {
	CustomerInfo customerInfoRequest        `json:"customerInfo" validate:"required"`
	Items        []itemInSubmitOrderRequest `json:"items"        validate:"required,min=1,dive"`
	Subtotal     float64                    `json:"subtotal"     validate:"gte=0"`
	Discount     float64                    `json:"discount"     validate:"gte=0"`
	Total        float64                    `json:"total"        validate:"gte=0"`
	PaymentInfo  paymentInfoRequest         `json:"paymentInfo"`
	UserID       string                     `json:"userId"`
}

// Validate validates the submit order request.
func (r *submitOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts the request to the canonical order. Decimal amounts
// are converted to cents, rounding half a cent up.
func (r *submitOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderitem.OrderItem{
			ProductID:    item.ProductID,
			ProductTitle: item.Name,
			Quantity:     item.Quantity,
			PriceCents:   currency.ToCents(item.Price),
			Category:     item.Category,
		}
	}

	cardLast4 := r.PaymentInfo.CardNumber
	if len(cardLast4) > 4 {
		cardLast4 = cardLast4[len(cardLast4)-4:]
	}

	return order.Order{
		UserID: r.UserID,
		Customer: order.CustomerSnapshot{
			Name:    r.CustomerInfo.Name,
			Email:   r.CustomerInfo.Email,
			Phone:   r.CustomerInfo.Phone,
			Address: r.CustomerInfo.Address,
		},
		OrderItems:    items,
		SubtotalCents: currency.ToCents(r.Subtotal),
		DiscountCents: currency.ToCents(r.Discount),
		TotalCents:    currency.ToCents(r.Total),
		Currency:      currency.CurrencyUSD,
		Payment: order.PaymentSnapshot{
			Method:    r.PaymentInfo.PaymentMethod,
			CardLast4: cardLast4,
		},
	}
}

// SubmitOrder handles the order submission request.
func SubmitOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := submitOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for submit order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error validating request body for submit order", "error", err)

		return
	}

	submitted, warning, err := service.SubmitOrder(r.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, order.ErrValidation) {
			response.Error(w, http.StatusBadRequest, err.Error())
			slog.Error("Error validating order for submit order", "error", err)

			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		slog.Error("Error performing submit order", "error", err)

		return
	}

	data := converters.OrderToResponse(submitted)
	if warning != "" {
		response.SuccessWithWarning(w, http.StatusCreated, data, warning)

		return
	}
	response.Success(w, http.StatusCreated, data)
}
