package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divelog/internal/audit"
	"divelog/internal/friends/metrics"
)

type recordingPurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	purged  int
	err     error
}

func (p *recordingPurger) DeleteExpiredRequests(_ context.Context, cutoff time.Time) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, cutoff)
	return p.purged, p.err
}

func (p *recordingPurger) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request store is required")

	s, err := New(&recordingPurger{}, WithInterval(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, s.interval)
}

func TestPurgeExpiredRequests(t *testing.T) {
	ctx := context.Background()
	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("passes the cutoff through and records the sweep", func(t *testing.T) {
		purger := &recordingPurger{purged: 3}
		sink := audit.NewInMemoryStore()
		m := metrics.New(prometheus.NewRegistry())
		s, err := New(purger, WithMetrics(m), WithAuditPublisher(audit.NewPublisher(sink)))
		require.NoError(t, err)

		n, err := s.PurgeExpiredRequests(ctx, cutoff)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []time.Time{cutoff}, purger.cutoffs)
		assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestsPurged))

		events := sink.All()
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionRequestsPurged, events[0].Action)
		assert.Equal(t, 3, events[0].Count)
	})

	t.Run("empty sweep emits no audit event", func(t *testing.T) {
		sink := audit.NewInMemoryStore()
		s, err := New(&recordingPurger{}, WithAuditPublisher(audit.NewPublisher(sink)))
		require.NoError(t, err)

		n, err := s.PurgeExpiredRequests(ctx, cutoff)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, sink.All())
	})

	t.Run("store failure is returned and counted", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		s, err := New(&recordingPurger{err: errors.New("connection reset")}, WithMetrics(m))
		require.NoError(t, err)

		_, err = s.PurgeExpiredRequests(ctx, cutoff)
		require.Error(t, err)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.SweepFailures))
	})
}

func TestRun(t *testing.T) {
	t.Run("sweeps on every tick using the clock as cutoff", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		purger := &recordingPurger{}
		s, err := New(purger, WithInterval(5*time.Millisecond), WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		require.Eventually(t, func() bool { return purger.calls() >= 2 }, time.Second, time.Millisecond)
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)

		purger.mu.Lock()
		defer purger.mu.Unlock()
		assert.Equal(t, now, purger.cutoffs[0])
	})

	t.Run("failed sweeps do not stop the loop", func(t *testing.T) {
		purger := &recordingPurger{err: errors.New("connection reset")}
		s, err := New(purger, WithInterval(5*time.Millisecond))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		require.Eventually(t, func() bool { return purger.calls() >= 3 }, time.Second, time.Millisecond)
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}
