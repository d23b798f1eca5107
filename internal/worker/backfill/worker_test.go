package backfill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/feastly/order-svc/internal/service/models/order"
)

type stubDocRepo struct {
	failed  []order.Order
	findErr error

	mirrorStates map[string]order.MirrorState
}

func (s *stubDocRepo) Insert(_ context.Context, _ *order.Order) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubDocRepo) FindByID(_ context.Context, _ string) (*order.Order, error) {
	return nil, order.ErrNotFound
}

func (s *stubDocRepo) FindByMirrorState(_ context.Context, state order.MirrorState, _ time.Time, limit int) ([]order.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if state != order.MirrorStateFailed {
		return nil, nil
	}
	if len(s.failed) > limit {
		return s.failed[:limit], nil
	}

	return s.failed, nil
}

func (s *stubDocRepo) AttachSQLOrderID(_ context.Context, _ string, _ int64) error {
	return nil
}

func (s *stubDocRepo) SetMirrorState(_ context.Context, id string, state order.MirrorState, _ string) error {
	if s.mirrorStates == nil {
		s.mirrorStates = map[string]order.MirrorState{}
	}
	s.mirrorStates[id] = state

	return nil
}

func (s *stubDocRepo) UpdateStatus(_ context.Context, _ string, _ order.Status) (*order.Order, error) {
	return nil, order.ErrNotFound
}

func (s *stubDocRepo) UpdatePaymentStatus(_ context.Context, _ string, _ order.PaymentStatus) (*order.Order, error) {
	return nil, order.ErrNotFound
}

type stubMirrorer struct {
	errByID  map[string]error
	mirrored []string
}

func (s *stubMirrorer) MirrorOrder(_ context.Context, o *order.Order) error {
	if err := s.errByID[o.ID]; err != nil {
		return err
	}
	s.mirrored = append(s.mirrored, o.ID)

	return nil
}

func newWorker(docs *stubDocRepo, svc *stubMirrorer) *Worker {
	return &Worker{
		docs:          docs,
		svc:           svc,
		pollInterval:  time.Second,
		batchSize:     50,
		retryInterval: time.Minute,
		stopCh:        make(chan struct{}),
	}
}

func TestProcessBatch_RetriesFailedMirrors(t *testing.T) {
	docs := &stubDocRepo{failed: []order.Order{
		{ID: "doc-1", Mirror: order.Mirror{State: order.MirrorStateFailed}},
		{ID: "doc-2", Mirror: order.Mirror{State: order.MirrorStateFailed}},
	}}
	svc := &stubMirrorer{}

	newWorker(docs, svc).processBatch(context.Background())

	if len(svc.mirrored) != 2 {
		t.Fatalf("mirrored = %v, want both orders", svc.mirrored)
	}
}

func TestProcessBatch_KeepsFailedStateOnError(t *testing.T) {
	docs := &stubDocRepo{failed: []order.Order{
		{ID: "doc-1", Mirror: order.Mirror{State: order.MirrorStateFailed}},
		{ID: "doc-2", Mirror: order.Mirror{State: order.MirrorStateFailed}},
	}}
	svc := &stubMirrorer{errByID: map[string]error{
		"doc-1": errors.New("still down"),
	}}

	newWorker(docs, svc).processBatch(context.Background())

	if len(svc.mirrored) != 1 || svc.mirrored[0] != "doc-2" {
		t.Errorf("mirrored = %v, want only doc-2", svc.mirrored)
	}
	if docs.mirrorStates["doc-1"] != order.MirrorStateFailed {
		t.Errorf("doc-1 mirror state = %s, want failed", docs.mirrorStates["doc-1"])
	}
}

func TestProcessBatch_RespectsBatchSize(t *testing.T) {
	docs := &stubDocRepo{}
	for i := 0; i < 5; i++ {
		docs.failed = append(docs.failed, order.Order{
			ID:     string(rune('a' + i)),
			Mirror: order.Mirror{State: order.MirrorStateFailed},
		})
	}
	svc := &stubMirrorer{}

	w := newWorker(docs, svc)
	w.batchSize = 3
	w.processBatch(context.Background())

	if len(svc.mirrored) != 3 {
		t.Errorf("mirrored %d orders, want 3", len(svc.mirrored))
	}
}

func TestStartStop(t *testing.T) {
	w := newWorker(&stubDocRepo{}, &stubMirrorer{})
	w.pollInterval = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
