package order

import (
	"errors"
	"testing"

	"github.com/feastly/order-svc/internal/service/models/orderitem"
)

func validOrder() Order {
	o := Order{
		Customer: CustomerSnapshot{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "+1-555-0100",
		},
		OrderItems: []orderitem.OrderItem{
			{ProductID: "pizza-1", ProductTitle: "Margherita", Quantity: 2, PriceCents: 29900},
			{ProductID: "drink-1", ProductTitle: "Lemonade", Quantity: 1, PriceCents: 7900},
		},
		DiscountCents: 33850,
	}
	o.ComputeTotals()

	return o
}

func TestComputeTotals(t *testing.T) {
	o := validOrder()

	if o.SubtotalCents != 67700 {
		t.Errorf("SubtotalCents = %d, want 67700", o.SubtotalCents)
	}
	if o.TotalCents != 33850 {
		t.Errorf("TotalCents = %d, want 33850", o.TotalCents)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(o *Order)
		wantOK bool
	}{
		{name: "valid order", mutate: func(o *Order) {}, wantOK: true},
		{name: "no items", mutate: func(o *Order) {
			o.OrderItems = nil
		}},
		{name: "zero quantity", mutate: func(o *Order) {
			o.OrderItems[0].Quantity = 0
			o.ComputeTotals()
		}},
		{name: "negative price", mutate: func(o *Order) {
			o.OrderItems[0].PriceCents = -100
			o.ComputeTotals()
		}},
		{name: "missing email", mutate: func(o *Order) {
			o.Customer.Email = "  "
		}},
		{name: "negative discount", mutate: func(o *Order) {
			o.DiscountCents = -1
			o.ComputeTotals()
		}},
		{name: "discount exceeds subtotal", mutate: func(o *Order) {
			o.DiscountCents = o.SubtotalCents + 1
			o.TotalCents = o.SubtotalCents - o.DiscountCents
		}},
		{name: "subtotal mismatch", mutate: func(o *Order) {
			o.SubtotalCents += 100
		}},
		{name: "total mismatch", mutate: func(o *Order) {
			o.TotalCents += 1
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validOrder()
			tc.mutate(&o)

			err := o.Validate()
			if tc.wantOK {
				if err != nil {
					t.Fatalf("Validate() returned error: %v", err)
				}

				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPreparing, false},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusCancelled, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusDelivered, false},
		{StatusReady, StatusDelivered, true},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "preparing", "ready", "delivered", "cancelled"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", s, err)
		}
	}

	if _, err := ParseStatus("shipped"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseStatus(shipped) error = %v, want ErrValidation", err)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "completed", "failed"} {
		if _, err := ParsePaymentStatus(s); err != nil {
			t.Errorf("ParsePaymentStatus(%q) returned error: %v", s, err)
		}
	}

	if _, err := ParsePaymentStatus("refunded"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParsePaymentStatus(refunded) error = %v, want ErrValidation", err)
	}
}
