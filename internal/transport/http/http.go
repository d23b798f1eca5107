package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/service/models/report"
	cancelorder "github.com/feastly/order-svc/internal/transport/http/cancel_order"
	customerreport "github.com/feastly/order-svc/internal/transport/http/customer_report"
	getorder "github.com/feastly/order-svc/internal/transport/http/get_order"
	listorders "github.com/feastly/order-svc/internal/transport/http/list_orders"
	submitorder "github.com/feastly/order-svc/internal/transport/http/submit_order"
	updatepaymentstatus "github.com/feastly/order-svc/internal/transport/http/update_payment_status"
	updatestatus "github.com/feastly/order-svc/internal/transport/http/update_status"
	"github.com/feastly/order-svc/pkg/http/middleware/trace"
	"github.com/feastly/order-svc/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type service interface {
	SubmitOrder(ctx context.Context, o order.Order) (*order.Order, string, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id string, next order.Status) (*order.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, next order.PaymentStatus) (*order.Order, error)
	CancelOrder(ctx context.Context, id string) (*order.Order, error)
	CustomerSummaries(ctx context.Context, filter report.QueryCustomerSummariesModel) ([]report.CustomerSummary, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.submitOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{orderId}", h.getOrder)
		r.Patch("/orders/{orderId}/status", h.updateStatus)
		r.Patch("/orders/{orderId}/payment-status", h.updatePaymentStatus)
		r.Post("/orders/{orderId}/cancel", h.cancelOrder)
		r.Get("/reports/customers", h.customerReport)
	})
}

func (h *HTTPTransport) submitOrder(w http.ResponseWriter, r *http.Request) {
	submitorder.SubmitOrder(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.service)
}

func (h *HTTPTransport) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	updatepaymentstatus.UpdatePaymentStatus(w, r, h.service)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.service)
}

func (h *HTTPTransport) customerReport(w http.ResponseWriter, r *http.Request) {
	customerreport.CustomerReport(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
