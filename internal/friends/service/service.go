// Package service holds the friend request lifecycle and the read-side queries.
//
// Stores and the transaction boundary are passed in explicitly; nothing here keeps
// state between calls beyond configuration.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"divelog/internal/friends/metrics"
	"divelog/internal/friends/models"
	id "divelog/pkg/domain"
	dErrors "divelog/pkg/domain-errors"
	"divelog/pkg/requestcontext"
)

const tracerName = "divelog/internal/friends/service"

type settings struct {
	ttl     time.Duration
	clock   func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
	tracer  trace.Tracer
}

type Option func(s *settings)

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *settings) {
		s.audit = publisher
	}
}

// WithTTL overrides the 14 day request window.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock sets the fallback clock used when the context carries no request time.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		ttl:    models.DefaultRequestTTL,
		clock:  time.Now,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// now prefers the request-scoped time so one call sees one instant.
func (s *settings) now(ctx context.Context) time.Time {
	if requestcontext.HasTime(ctx) {
		return requestcontext.Now(ctx)
	}
	return s.clock()
}

func (s *settings) startSpan(ctx context.Context, name string, a, b id.UserID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "friends."+name, trace.WithAttributes(
		attribute.String("friends.user_a", a.String()),
		attribute.String("friends.user_b", b.String()),
	))
}

// translate turns store and context failures into domain errors. Errors that
// already carry a code pass through unchanged.
func translate(err error, message string) error {
	if dErrors.CodeOf(err) != "" {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, message)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}

func isDomainRejection(err error) bool {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeTimeout, "":
		return false
	}
	return true
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
}

func requireUsers(a, b id.UserID) error {
	if a.IsNil() || b.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "user ids are required")
	}
	return nil
}
