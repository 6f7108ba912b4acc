// Package requestcontext carries the request id and the request's reference
// time through a context without depending on net/http.
//
// Middleware or workers stamp a context once:
//
//	ctx = requestcontext.Stamp(ctx, requestID, time.Now())
//
// and services read from it:
//
//	now := requestcontext.Now(ctx)
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// RequestID returns the request id, or "" when none was set.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(requestIDKey{}).(string)
	return reqID
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// HasTime reports whether a reference time was set.
func HasTime(ctx context.Context) bool {
	_, ok := ctx.Value(requestTimeKey{}).(time.Time)
	return ok
}

// Now returns the reference time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Stamp sets both values at once. An empty requestID leaves any existing id alone.
func Stamp(ctx context.Context, requestID string, now time.Time) context.Context {
	if requestID != "" {
		ctx = WithRequestID(ctx, requestID)
	}
	return WithTime(ctx, now)
}
