package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const drainTimeout = 5 * time.Second

// ErrBufferFull is returned when the worker cannot keep up and the buffer is at capacity.
var ErrBufferFull = errors.New("audit buffer full")

// Buffer is a Store that hands events to a Worker through a bounded channel, keeping
// slow sinks (Kafka) off the caller's path.
type Buffer struct {
	ch chan Event
}

func NewBuffer(size int) *Buffer {
	return &Buffer{ch: make(chan Event, size)}
}

// Append enqueues without blocking; a full buffer drops the event.
func (b *Buffer) Append(ctx context.Context, event Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.ch <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

func (b *Buffer) Inbox() <-chan Event {
	return b.ch
}

// Worker consumes audit events from a channel and persists them. A failed append is
// logged and the worker moves on.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit event",
					"action", string(event.Action),
					"error", err.Error(),
				)
			}
		}
	}
}

// drain flushes whatever is already queued once the worker is asked to stop.
func (w *Worker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("failed to persist audit event during shutdown",
					"action", string(event.Action),
					"error", err.Error(),
				)
			}
		default:
			return
		}
	}
}
