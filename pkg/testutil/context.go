package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"

	"divelog/pkg/requestcontext"
)

// At returns a context pinned to now with a fresh request id, the way an
// inbound request would arrive.
func At(now time.Time) context.Context {
	return requestcontext.Stamp(context.Background(), uuid.NewString(), now)
}
