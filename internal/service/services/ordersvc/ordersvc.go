package ordersvc

import (
	"context"

	"github.com/feastly/order-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/feastly/order-svc/internal/dal/interfaces/iorderdocrepo"
	"github.com/feastly/order-svc/internal/dal/interfaces/iorderitemrepo"
	"github.com/feastly/order-svc/internal/dal/interfaces/iorderrepo"
	"github.com/feastly/order-svc/internal/dal/interfaces/ireportrepo"
	"github.com/feastly/order-svc/internal/dal/mongodb"
	"github.com/feastly/order-svc/internal/dal/postgres"
	customerrepo "github.com/feastly/order-svc/internal/dal/repositories/customer/postgres"
	orderdocrepo "github.com/feastly/order-svc/internal/dal/repositories/orderdoc/mongodb"
	reportrepo "github.com/feastly/order-svc/internal/dal/repositories/report/postgres"
	"github.com/feastly/order-svc/internal/dal/uow"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("order-svc")

// OrderService sequences the dual-store order write path: the mandatory
// document-store write, the best-effort relational mirror, and the
// status lifecycle over both stores.
type OrderService struct {
	pgClient  *postgres.Client
	docs      iorderdocrepo.IOrderDocRepository
	customers icustomerrepo.ICustomerRepository
	reports   ireportrepo.IReportRepository
	events    eventPublisher
	newUOW    func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

type eventPublisher interface {
	OrderCreated(o *order.Order) error
	OrderStatusChanged(o *order.Order, previous order.Status) error
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the relational store client and binds the
// customer, reporting and order repositories to it.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.customers = customerrepo.NewPostgresCustomerRepository(pgClient.Pool())
		s.reports = reportrepo.NewPostgresReportRepository(sqlx.NewDb(pgClient.DB(), "pgx"))
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithMongoClient sets the document store client for the primary order records.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMongoClient(mongoClient *mongodb.Client) option {
	return func(s *OrderService) {
		s.docs = orderdocrepo.NewMongoOrderDocRepository(mongoClient)
	}
}

// WithEventPublisher sets the broker publisher for order events.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventPublisher(p eventPublisher) option {
	return func(s *OrderService) {
		s.events = p
	}
}
