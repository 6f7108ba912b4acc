// Package requesttime stamps each HTTP request with a single "now" and a
// request id, so every operation a handler triggers shares one reference time.
package requesttime

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"divelog/pkg/requestcontext"
)

// HeaderRequestID echoes the request id back to the caller.
const HeaderRequestID = "X-Request-Id"

// Middleware captures the current time at the start of the request and copies
// chi's request id into requestcontext. Mount it after middleware.RequestID.
func Middleware(next http.Handler) http.Handler {
	return Stamp(time.Now)(next)
}

// Stamp is Middleware with an injectable clock.
func Stamp(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(HeaderRequestID, reqID)
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.Stamp(r.Context(), reqID, clock())))
		})
	}
}
