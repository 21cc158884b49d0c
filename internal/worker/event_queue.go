package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/events"
)

type job struct {
	ctx   context.Context
	event events.Event
}

// EventQueue is an events.Dispatcher that hands published events to a pool
// of goroutines, so slow handlers such as operator mail stay off the request
// path. Subscriptions go to the wrapped dispatcher. When the queue is full or
// already shut down, Publish delivers synchronously instead of dropping.
type EventQueue struct {
	inner   events.Dispatcher
	logger  *zap.Logger
	workers int

	mu     sync.RWMutex
	jobs   chan job
	closed bool
	wg     sync.WaitGroup
}

var _ events.Dispatcher = (*EventQueue)(nil)

// NewEventQueue wraps inner. Call Start before publishing.
func NewEventQueue(inner events.Dispatcher, size, workers int, logger *zap.Logger) *EventQueue {
	if size <= 0 {
		size = 1
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventQueue{
		inner:   inner,
		logger:  logger,
		workers: workers,
		jobs:    make(chan job, size),
	}
}

// Start launches the worker goroutines.
func (q *EventQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
	q.logger.Info("event queue started", zap.Int("workers", q.workers), zap.Int("capacity", cap(q.jobs)))
}

func (q *EventQueue) run() {
	defer q.wg.Done()
	for j := range q.jobs {
		_ = q.inner.Publish(j.ctx, j.event)
	}
}

// Publish enqueues event. The request context is detached from cancellation
// so handlers still run after the response has been written.
func (q *EventQueue) Publish(ctx context.Context, event events.Event) error {
	detached := context.WithoutCancel(ctx)

	q.mu.RLock()
	if !q.closed {
		select {
		case q.jobs <- job{ctx: detached, event: event}:
			q.mu.RUnlock()
			return nil
		default:
		}
	}
	q.mu.RUnlock()

	q.logger.Warn("event queue unavailable, delivering inline",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
	return q.inner.Publish(detached, event)
}

// Subscribe registers handler on the wrapped dispatcher.
func (q *EventQueue) Subscribe(eventType events.EventType, handler events.EventHandler) {
	q.inner.Subscribe(eventType, handler)
}

// Shutdown stops accepting events and waits for queued ones to finish or ctx to end.
func (q *EventQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
