package backfill

import (
	"context"
	"log/slog"
	"time"

	"github.com/feastly/order-svc/internal/dal/interfaces/iorderdocrepo"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/spf13/viper"
)

// mirrorer retries the relational copy of an order. MirrorOrder is
// idempotent, so a crash between retry and bookkeeping is harmless.
type mirrorer interface {
	MirrorOrder(ctx context.Context, o *order.Order) error
}

// Worker retries orders whose relational mirror failed, so the two
// stores converge without operator action.
type Worker struct {
	docs          iorderdocrepo.IOrderDocRepository
	svc           mirrorer
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

// NewWorker creates a new mirror backfill worker.
func NewWorker(docs iorderdocrepo.IOrderDocRepository, svc mirrorer) *Worker {
	pollIntervalSeconds := viper.GetInt("worker.backfill.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 30
	}

	batchSize := viper.GetInt("worker.backfill.batch_size")
	if batchSize == 0 {
		batchSize = 50
	}

	retryIntervalSeconds := viper.GetInt("worker.backfill.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 60
	}

	return &Worker{
		docs:          docs,
		svc:           svc,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
}

// Start begins retrying failed mirrors.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Mirror backfill worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Mirror backfill worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Mirror backfill worker stopped")

			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processBatch retries orders whose mirror failed and has not been
// retried within the retry interval.
func (w *Worker) processBatch(ctx context.Context) {
	cutoff := time.Now().Add(-w.retryInterval)

	orders, err := w.docs.FindByMirrorState(ctx, order.MirrorStateFailed, cutoff, w.batchSize)
	if err != nil {
		slog.Error("Failed to query orders pending backfill", "error", err)

		return
	}

	if len(orders) == 0 {
		return
	}

	slog.Info("Backfilling relational mirrors", "count", len(orders))

	for i := range orders {
		o := orders[i]
		if err := w.svc.MirrorOrder(ctx, &o); err != nil {
			slog.Warn("Failed to backfill relational mirror, will retry",
				"order_id", o.ID,
				"error", err,
			)

			if stateErr := w.docs.SetMirrorState(ctx, o.ID, order.MirrorStateFailed, err.Error()); stateErr != nil {
				slog.Error("Failed to update mirror state", "order_id", o.ID, "error", stateErr)
			}

			continue
		}

		slog.Info("Relational mirror backfilled", "order_id", o.ID, "sql_order_id", o.SQLOrderID)
	}
}
