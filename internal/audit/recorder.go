package audit

import (
	"context"
	"log/slog"
	"time"

	"opsportal/internal/platform/metrics"
)

// Recorder queues audit events for background persistence so authentication
// never waits on the audit store. Append failures go to the observability
// channel (log + counter) only; they must not gate access.
type Recorder struct {
	store   Store
	inbox   chan Event
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRecorder(store Store, logger *slog.Logger, m *metrics.Metrics, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 1024
	}
	return &Recorder{
		store:   store,
		inbox:   make(chan Event, buffer),
		logger:  logger,
		metrics: m,
	}
}

// Record enqueues an event without blocking the caller. A zero timestamp is
// stamped with the current instant. When the inbox is full the event is
// dropped and counted; the caller's transition already succeeded.
func (r *Recorder) Record(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case r.inbox <- event:
	default:
		r.metrics.IncrementAuditEventDropped()
		if r.logger != nil {
			r.logger.Warn("audit recorder inbox full, event dropped",
				"event_id", event.ID,
				"action", string(event.Action),
			)
		}
	}
}

// Run consumes the inbox and appends events to the store until ctx is done.
// A failed append is logged and counted, then processing continues; one bad
// write must not stall the trail.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return ctx.Err()
		case event := <-r.inbox:
			r.append(ctx, event)
		}
	}
}

// drain gives queued events a last chance to persist during shutdown.
func (r *Recorder) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-r.inbox:
			r.append(ctx, event)
		default:
			return
		}
	}
}

func (r *Recorder) append(ctx context.Context, event Event) {
	if err := r.store.Append(ctx, event); err != nil {
		r.metrics.IncrementAuditAppendFailure()
		if r.logger != nil {
			r.logger.Error("audit append failed",
				"error", err,
				"event_id", event.ID,
				"action", string(event.Action),
			)
		}
	}
}
