package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feastly/order-svc/internal/dal/mongodb"
	"github.com/feastly/order-svc/internal/dal/postgres"
	"github.com/feastly/order-svc/internal/dal/rabbitmq"
	orderdocrepo "github.com/feastly/order-svc/internal/dal/repositories/orderdoc/mongodb"
	"github.com/feastly/order-svc/internal/jaeger"
	"github.com/feastly/order-svc/internal/service/events"
	"github.com/feastly/order-svc/internal/service/services/ordersvc"
	httptransport "github.com/feastly/order-svc/internal/transport/http"
	"github.com/feastly/order-svc/internal/worker/backfill"
	"github.com/spf13/viper"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	backfillWorker *backfill.Worker
	postgresClient *postgres.Client
	mongoClient    *mongodb.Client
	rabbitClient   *rabbitmq.Client
	tracerProvider *tracesdk.TracerProvider
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracerProvider := jaeger.MustNewTracerProvider()

	postgresClient := postgres.MustNewClient(postgres.Config{
		Host:           os.Getenv("ORDER_PG_HOST"),
		Port:           os.Getenv("ORDER_PG_PORT"),
		User:           os.Getenv("ORDER_PG_USER"),
		Password:       os.Getenv("ORDER_PG_PASSWORD"),
		Database:       os.Getenv("ORDER_PG_DB"),
		MigrationsPath: viper.GetString("postgres.migrations_path"),
	})

	mongoClient := mongodb.MustNewClient(mongodb.Config{
		URI:      os.Getenv("ORDER_MONGO_URI"),
		Database: viper.GetString("mongo.database"),
	})

	rabbitClient := rabbitmq.MustNewClient(rabbitmq.Config{
		User:     os.Getenv("RABBITMQ_DEFAULT_USER"),
		Password: os.Getenv("RABBITMQ_DEFAULT_PASS"),
		Host:     viper.GetString("rabbitmq.host"),
	})

	publisher := events.MustNewPublisher(rabbitClient, viper.GetString("rabbitmq.queue"))

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithMongoClient(mongoClient),
		ordersvc.WithEventPublisher(publisher),
	)

	backfillWorker := backfill.NewWorker(
		orderdocrepo.NewMongoOrderDocRepository(mongoClient),
		orderSvc,
	)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		backfillWorker: backfillWorker,
		postgresClient: postgresClient,
		mongoClient:    mongoClient,
		rabbitClient:   rabbitClient,
		tracerProvider: tracerProvider,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.backfillWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.tracerProvider.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	if err := a.mongoClient.Close(ctx); err != nil {
		slog.Error("MongoDB connection close error", "error", err)
	}

	if err := a.postgresClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
