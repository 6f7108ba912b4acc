// Package sweeper deletes friend requests whose window has closed.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"divelog/internal/audit"
	"divelog/internal/friends/metrics"
)

const (
	DefaultInterval = time.Hour
	tracerName      = "divelog/internal/friends/sweeper"
)

// RequestPurger is the slice of the request store the sweeper needs.
type RequestPurger interface {
	DeleteExpiredRequests(ctx context.Context, cutoff time.Time) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Sweeper removes expired requests on demand or on a fixed interval. It takes no
// locks of its own; accept and reject re-check expiry inside their transaction.
type Sweeper struct {
	store    RequestPurger
	interval time.Duration
	clock    func() time.Time
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    AuditPublisher
	tracer   trace.Tracer
}

type Option func(*Sweeper)

func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sweeper) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Sweeper) {
		s.audit = publisher
	}
}

func New(store RequestPurger, opts ...Option) (*Sweeper, error) {
	if store == nil {
		return nil, errors.New("request store is required")
	}
	s := &Sweeper{
		store:    store,
		interval: DefaultInterval,
		clock:    time.Now,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PurgeExpiredRequests deletes every request with ExpiresAt strictly before
// cutoff, resolved or not, and returns how many were removed.
func (s *Sweeper) PurgeExpiredRequests(ctx context.Context, cutoff time.Time) (int, error) {
	ctx, span := s.tracer.Start(ctx, "friends.PurgeExpiredRequests",
		trace.WithAttributes(attribute.String("friends.cutoff", cutoff.UTC().Format(time.RFC3339))))
	defer span.End()

	start := time.Now()
	purged, err := s.store.DeleteExpiredRequests(ctx, cutoff)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "purge failed")
		if s.metrics != nil {
			s.metrics.IncrementSweepFailures()
		}
		return 0, err
	}
	span.SetAttributes(attribute.Int("friends.purged", purged))
	if s.metrics != nil {
		s.metrics.ObserveSweep(purged, time.Since(start))
	}

	if purged > 0 && s.audit != nil {
		event := audit.Event{
			Timestamp: s.clock(),
			Action:    audit.ActionRequestsPurged,
			Count:     purged,
		}
		if err := s.audit.Emit(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to emit audit event", "action", string(event.Action), "error", err.Error())
		}
	}
	return purged, nil
}

// Run sweeps every interval until ctx is cancelled. A failed sweep is logged and
// retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "friend request sweeper started", "interval", s.interval.String())
	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "friend request sweeper stopped")
			return ctx.Err()
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := s.clock()
	purged, err := s.PurgeExpiredRequests(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.ErrorContext(ctx, "friend request sweep failed", "error", err.Error())
		return
	}
	s.logger.InfoContext(ctx, "friend request sweep completed",
		"purged", purged,
		"cutoff", cutoff,
	)
}
