package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/feastly/order-svc/internal/service/models/currency"
	"github.com/feastly/order-svc/internal/service/models/orderitem"
)

var (
	ErrValidation        = errors.New("invalid order")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCancelNotPending  = errors.New("order cannot be cancelled at this stage")
)

// CustomerSnapshot is the customer contact data captured at order time.
// Guest customers have no stable identity, so the order embeds a copy
// instead of referencing a live record.
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PaymentSnapshot is the payment data captured at order time. Only the
// last four card digits are retained.
type PaymentSnapshot struct {
	Method    string `json:"method"`
	CardLast4 string `json:"cardLast4"`
}

// Order is the canonical order as accepted at checkout. The document
// store and the relational store each persist their own projection of it.
type Order struct {
	ID            string                `json:"id"`
	SQLOrderID    int64                 `json:"sqlOrderId,omitempty"`
	CustomerID    int64                 `json:"customerId,omitempty"`
	UserID        string                `json:"userId,omitempty"`
	Customer      CustomerSnapshot      `json:"customer"`
	OrderItems    []orderitem.OrderItem `json:"orderItems"`
	SubtotalCents int64                 `json:"subtotalCents"`
	DiscountCents int64                 `json:"discountCents"`
	TotalCents    int64                 `json:"totalCents"`
	Currency      currency.Currency     `json:"currency"`
	Status        Status                `json:"status"`
	PaymentStatus PaymentStatus         `json:"paymentStatus"`
	Payment       PaymentSnapshot       `json:"payment"`
	Mirror        Mirror                `json:"mirror"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ComputeTotals derives subtotal and total from the order items and discount.
func (o *Order) ComputeTotals() {
	var subtotal int64
	for _, item := range o.OrderItems {
		subtotal += item.PriceCents * int64(item.Quantity)
	}
	o.SubtotalCents = subtotal
	o.TotalCents = subtotal - o.DiscountCents
}

// Validate checks the order preconditions before any store is touched.
func (o *Order) Validate() error {
	if len(o.OrderItems) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for i, item := range o.OrderItems {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrValidation, i)
		}
		if item.PriceCents < 0 {
			return fmt.Errorf("%w: item %d price must not be negative", ErrValidation, i)
		}
	}
	if strings.TrimSpace(o.Customer.Email) == "" {
		return fmt.Errorf("%w: customer email is required", ErrValidation)
	}
	if o.DiscountCents < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrValidation)
	}
	if o.DiscountCents > o.SubtotalCents {
		return fmt.Errorf("%w: discount must not exceed subtotal", ErrValidation)
	}

	var subtotal int64
	for _, item := range o.OrderItems {
		subtotal += item.PriceCents * int64(item.Quantity)
	}
	if o.SubtotalCents != subtotal {
		return fmt.Errorf("%w: subtotal does not match order items", ErrValidation)
	}
	if o.TotalCents != o.SubtotalCents-o.DiscountCents {
		return fmt.Errorf("%w: total does not match subtotal minus discount", ErrValidation)
	}

	return nil
}
