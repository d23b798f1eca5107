package submitorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/feastly/order-svc/internal/service/models/order"
)

type stubService struct {
	submitted *order.Order
	warning   string
	err       error

	calls int
	got   order.Order
}

func (s *stubService) SubmitOrder(_ context.Context, o order.Order) (*order.Order, string, error) {
	s.calls++
	s.got = o
	if s.err != nil {
		return nil, "", s.err
	}

	return s.submitted, s.warning, nil
}

const validBody = `{
	"customerInfo": {"name": "Ada Lovelace", "email": "ada@example.com", "phone": "+1-555-0100"},
	"items": [
		{"_id": "pizza-1", "name": "Margherita", "quantity": 2, "price": 299},
		{"_id": "drink-1", "name": "Lemonade", "quantity": 1, "price": 79}
	],
	"subtotal": 677,
	"discount": 338.5,
	"total": 338.5,
	"paymentInfo": {"cardNumber": "4111111111111111", "paymentMethod": "card"}
}`

func doRequest(t *testing.T, svc *stubService, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	SubmitOrder(rec, req, svc)

	return rec
}

func TestSubmitOrder_Created(t *testing.T) {
	svc := &stubService{
		submitted: &order.Order{
			ID:            "doc-1",
			SQLOrderID:    42,
			SubtotalCents: 67700,
			DiscountCents: 33850,
			TotalCents:    33850,
			Status:        order.StatusPending,
		},
	}

	rec := doRequest(t, svc, validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	if svc.got.SubtotalCents != 67700 {
		t.Errorf("submitted subtotal = %d cents, want 67700", svc.got.SubtotalCents)
	}
	if svc.got.TotalCents != 33850 {
		t.Errorf("submitted total = %d cents, want 33850", svc.got.TotalCents)
	}
	if svc.got.Payment.CardLast4 != "1111" {
		t.Errorf("card last4 = %q, want 1111", svc.got.Payment.CardLast4)
	}
	if len(svc.got.OrderItems) != 2 || svc.got.OrderItems[0].PriceCents != 29900 {
		t.Errorf("items not converted to cents: %+v", svc.got.OrderItems)
	}

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Warning string          `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Warning != "" {
		t.Errorf("warning = %q, want empty", env.Warning)
	}
}

func TestSubmitOrder_CreatedWithWarning(t *testing.T) {
	svc := &stubService{
		submitted: &order.Order{ID: "doc-1", Status: order.StatusPending},
		warning:   "order recorded; reporting copy is temporarily unavailable",
	}

	rec := doRequest(t, svc, validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Success bool   `json:"success"`
		Warning string `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !env.Success || env.Warning == "" {
		t.Errorf("envelope = %+v, want success with warning", env)
	}
}

func TestSubmitOrder_BadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"items": [`},
		{name: "missing email", body: `{
			"customerInfo": {"name": "Ada Lovelace"},
			"items": [{"_id": "pizza-1", "name": "Margherita", "quantity": 1, "price": 299}],
			"subtotal": 299, "total": 299
		}`},
		{name: "empty items", body: `{
			"customerInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
			"items": [],
			"subtotal": 0, "total": 0
		}`},
		{name: "zero quantity", body: `{
			"customerInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
			"items": [{"_id": "pizza-1", "name": "Margherita", "quantity": 0, "price": 299}],
			"subtotal": 0, "total": 0
		}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{}

			rec := doRequest(t, svc, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
			if svc.calls != 0 {
				t.Errorf("service calls = %d, want 0", svc.calls)
			}
		})
	}
}

func TestSubmitOrder_ValidationErrorFromService(t *testing.T) {
	svc := &stubService{err: order.ErrValidation}

	rec := doRequest(t, svc, validBody)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
