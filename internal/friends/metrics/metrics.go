package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the friends domain.
type Metrics struct {
	RequestsCreated    prometheus.Counter
	RequestsResolved   *prometheus.CounterVec
	RequestsCancelled  prometheus.Counter
	FriendshipsRemoved prometheus.Counter
	OperationRejected  *prometheus.CounterVec
	RequestsPurged     prometheus.Counter
	SweepDuration      prometheus.Histogram
	SweepFailures      prometheus.Counter
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "divelog_friend_requests_created_total",
			Help: "Total number of friend requests created",
		}),
		RequestsResolved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "divelog_friend_requests_resolved_total",
			Help: "Total number of friend requests resolved, by outcome",
		}, []string{"outcome"}),
		RequestsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "divelog_friend_requests_cancelled_total",
			Help: "Total number of friend requests cancelled by a participant",
		}),
		FriendshipsRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "divelog_friendships_removed_total",
			Help: "Total number of friendships removed",
		}),
		OperationRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "divelog_friend_operations_rejected_total",
			Help: "Lifecycle operations refused by a domain rule, by operation and error code",
		}, []string{"operation", "code"}),
		RequestsPurged: f.NewCounter(prometheus.CounterOpts{
			Name: "divelog_friend_requests_purged_total",
			Help: "Total number of expired friend requests deleted by the sweeper",
		}),
		SweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "divelog_friend_request_sweep_duration_seconds",
			Help:    "Duration of expired friend request sweeps",
			Buckets: prometheus.DefBuckets,
		}),
		SweepFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "divelog_friend_request_sweep_failures_total",
			Help: "Total number of sweeps that failed",
		}),
	}
}

func (m *Metrics) IncrementRequestsCreated() {
	m.RequestsCreated.Inc()
}

func (m *Metrics) IncrementRequestsResolved(outcome string) {
	m.RequestsResolved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementRequestsCancelled() {
	m.RequestsCancelled.Inc()
}

func (m *Metrics) IncrementFriendshipsRemoved() {
	m.FriendshipsRemoved.Inc()
}

func (m *Metrics) IncrementOperationRejected(operation, code string) {
	m.OperationRejected.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) ObserveSweep(purged int, duration time.Duration) {
	m.RequestsPurged.Add(float64(purged))
	m.SweepDuration.Observe(duration.Seconds())
}

func (m *Metrics) IncrementSweepFailures() {
	m.SweepFailures.Inc()
}
