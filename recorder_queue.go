package chute

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/ports"
)

const (
	// DefaultRecorderBuffer is how many flight events may wait for the recorder.
	DefaultRecorderBuffer = 256
	// DefaultRecorderTimeout bounds a single append to the recorder.
	DefaultRecorderTimeout = 2 * time.Second
)

type recordJob struct {
	ev   domain.Event
	done chan struct{}
}

// recordQueue moves flight recording off the tick path. A slow or stalled
// recorder only delays the history, never the release sequence.
type recordQueue struct {
	recorder ports.FlightRecorder
	flightID string
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.RWMutex
	closed  bool
	jobs    chan recordJob
	drained chan struct{}
}

func newRecordQueue(r ports.FlightRecorder, flightID string, size int, timeout time.Duration, logger *slog.Logger) *recordQueue {
	if size <= 0 {
		size = DefaultRecorderBuffer
	}
	if timeout <= 0 {
		timeout = DefaultRecorderTimeout
	}
	q := &recordQueue{
		recorder: r,
		flightID: flightID,
		timeout:  timeout,
		logger:   logger,
		jobs:     make(chan recordJob, size),
		drained:  make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *recordQueue) drain() {
	defer close(q.drained)
	for job := range q.jobs {
		if job.done != nil {
			close(job.done)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.recorder.Append(ctx, q.flightID, job.ev)
		cancel()
		if err != nil {
			q.logger.Error("failed to record flight event", "type", job.ev.Type, "err", err)
		}
	}
}

// enqueue never blocks. The event is dropped when the backlog is full.
func (q *recordQueue) enqueue(ev domain.Event) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return
	}
	select {
	case q.jobs <- recordJob{ev: ev}:
	default:
		q.logger.Warn("flight recorder backlog full, event dropped", "type", ev.Type, "kind", ev.Kind)
	}
}

// flush waits until every event enqueued before the call has been handed to
// the recorder.
func (q *recordQueue) flush(ctx context.Context) error {
	done := make(chan struct{})
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return nil
	}
	select {
	case q.jobs <- recordJob{done: done}:
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	}
	q.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *recordQueue) close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	select {
	case <-q.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
