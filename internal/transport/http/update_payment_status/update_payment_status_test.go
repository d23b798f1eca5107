package updatepaymentstatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/go-chi/chi/v5"
)

type stubService struct {
	updated *order.Order
	err     error

	calls  int
	gotID  string
	gotSts order.PaymentStatus
}

func (s *stubService) UpdatePaymentStatus(_ context.Context, id string, next order.PaymentStatus) (*order.Order, error) {
	s.calls++
	s.gotID = id
	s.gotSts = next
	if s.err != nil {
		return nil, s.err
	}

	return s.updated, nil
}

func doRequest(t *testing.T, svc *stubService, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/doc-1/payment-status", strings.NewReader(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", "doc-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	UpdatePaymentStatus(rec, req, svc)

	return rec
}

func TestUpdatePaymentStatus_OK(t *testing.T) {
	svc := &stubService{updated: &order.Order{ID: "doc-1", PaymentStatus: order.PaymentCompleted}}

	rec := doRequest(t, svc, `{"paymentStatus": "completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if svc.gotID != "doc-1" || svc.gotSts != order.PaymentCompleted {
		t.Errorf("service called with (%q, %s), want (doc-1, completed)", svc.gotID, svc.gotSts)
	}
}

func TestUpdatePaymentStatus_UnknownStatus(t *testing.T) {
	svc := &stubService{}

	rec := doRequest(t, svc, `{"paymentStatus": "refunded"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if svc.calls != 0 {
		t.Errorf("service calls = %d, want 0", svc.calls)
	}
}

func TestUpdatePaymentStatus_NotFound(t *testing.T) {
	svc := &stubService{err: order.ErrNotFound}

	rec := doRequest(t, svc, `{"paymentStatus": "failed"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}
