package converters

import (
	"time"

	"github.com/feastly/order-svc/internal/service/models/currency"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/service/models/report"
)

// OrderItemResponse is the API shape of one order line.
type OrderItemResponse struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
}

// CustomerResponse is the API shape of the customer snapshot.
type CustomerResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PaymentResponse is the API shape of the payment snapshot.
type PaymentResponse struct {
	Method    string `json:"paymentMethod"`
	CardLast4 string `json:"cardLast4"`
}

// OrderResponse is the API shape of an order record. Money is serialized
// back to decimal currency units.
type OrderResponse struct {
	ID            string              `json:"id"`
	SQLOrderID    int64               `json:"sqlOrderId,omitempty"`
	UserID        string              `json:"userId,omitempty"`
	CustomerInfo  CustomerResponse    `json:"customerInfo"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      float64             `json:"subtotal"`
	Discount      float64             `json:"discount"`
	Total         float64             `json:"total"`
	Currency      string              `json:"currency"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	PaymentInfo   PaymentResponse     `json:"paymentInfo"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// OrderToResponse converts an internal Order model to its API shape.
func OrderToResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.OrderItems))
	for i, item := range o.OrderItems {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.ProductTitle,
			Quantity:  item.Quantity,
			Price:     currency.FromCents(item.PriceCents),
			Category:  item.Category,
		}
	}

	return OrderResponse{
		ID:         o.ID,
		SQLOrderID: o.SQLOrderID,
		UserID:     o.UserID,
		CustomerInfo: CustomerResponse{
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		Items:         items,
		Subtotal:      currency.FromCents(o.SubtotalCents),
		Discount:      currency.FromCents(o.DiscountCents),
		Total:         currency.FromCents(o.TotalCents),
		Currency:      o.Currency.String(),
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		PaymentInfo: PaymentResponse{
			Method:    o.Payment.Method,
			CardLast4: o.Payment.CardLast4,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// OrdersToResponse converts a slice of internal Order models.
func OrdersToResponse(orders []order.Order) []OrderResponse {
	result := make([]OrderResponse, len(orders))
	for i := range orders {
		result[i] = OrderToResponse(&orders[i])
	}

	return result
}

// CustomerSummaryResponse is the API shape of a reporting row.
type CustomerSummaryResponse struct {
	CustomerID  int64      `json:"customerId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	OrderCount  int64      `json:"orderCount"`
	TotalSpent  float64    `json:"totalSpent"`
	LastOrderAt *time.Time `json:"lastOrderAt,omitempty"`
}

// CustomerSummariesToResponse converts reporting rows to their API shape.
func CustomerSummariesToResponse(summaries []report.CustomerSummary) []CustomerSummaryResponse {
	result := make([]CustomerSummaryResponse, len(summaries))
	for i, s := range summaries {
		result[i] = CustomerSummaryResponse{
			CustomerID:  s.CustomerID,
			Name:        s.Name,
			Email:       s.Email,
			OrderCount:  s.OrderCount,
			TotalSpent:  currency.FromCents(s.TotalSpentCents),
			LastOrderAt: s.LastOrderAt,
		}
	}

	return result
}
