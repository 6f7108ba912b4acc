package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	t.Run("returns injected time", func(t *testing.T) {
		fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
		ctx := WithTime(context.Background(), fixed)

		assert.True(t, HasTime(ctx))
		assert.Equal(t, fixed, Now(ctx))
	})

	t.Run("falls back to wall clock", func(t *testing.T) {
		before := time.Now()
		got := Now(context.Background())

		assert.False(t, HasTime(context.Background()))
		assert.False(t, got.Before(before))
	})
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "req-42", RequestID(WithRequestID(context.Background(), "req-42")))
}

func TestStamp(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("sets both values", func(t *testing.T) {
		ctx := Stamp(context.Background(), "req-1", fixed)
		assert.Equal(t, "req-1", RequestID(ctx))
		assert.Equal(t, fixed, Now(ctx))
	})

	t.Run("empty id keeps the existing one", func(t *testing.T) {
		ctx := Stamp(WithRequestID(context.Background(), "outer"), "", fixed)
		assert.Equal(t, "outer", RequestID(ctx))
		assert.True(t, HasTime(ctx))
	})
}
