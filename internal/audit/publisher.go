package audit

import (
	"context"
	"time"

	"divelog/pkg/requestcontext"
)

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher stamps events and hands them to a Store.
type Publisher struct {
	store Store
	clock func() time.Time
}

type PublisherOption func(*Publisher)

// WithClock overrides the clock used for events emitted without a timestamp.
func WithClock(clock func() time.Time) PublisherOption {
	return func(p *Publisher) {
		if clock != nil {
			p.clock = clock
		}
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills in the timestamp and the inbound correlation id when the caller
// left them blank, then appends the event.
func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = p.clock()
	}
	if base.CorrelationID == "" {
		base.CorrelationID = requestcontext.RequestID(ctx)
	}
	return p.store.Append(ctx, base)
}
