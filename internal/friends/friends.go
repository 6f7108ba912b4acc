// Package friends wires the friend relationship lifecycle: the mutating
// lifecycle service, the read-side query service and the expiry sweeper, all
// sharing one store.
package friends

import (
	"context"
	"log/slog"
	"time"

	"divelog/internal/friends/metrics"
	"divelog/internal/friends/service"
	"divelog/internal/friends/store"
	"divelog/internal/friends/sweeper"
)

// LifecycleService owns every write to requests and friendships.
type LifecycleService = service.LifecycleService

// QueryService answers read-only questions.
type QueryService = service.QueryService

// Sweeper purges expired requests.
type Sweeper = sweeper.Sweeper

// AuditPublisher receives lifecycle audit events.
type AuditPublisher = service.AuditPublisher

// Deps are the optional collaborators shared by every component.
type Deps struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Audit         AuditPublisher
	RequestTTL    time.Duration
	SweepInterval time.Duration
	Clock         func() time.Time
}

// Module bundles the wired components.
type Module struct {
	Lifecycle *LifecycleService
	Queries   *QueryService
	Sweeper   *Sweeper
}

// transactional is a store that serves both store ports and can rebind itself
// to a transaction.
type transactional[S any] interface {
	service.RequestStore
	service.FriendshipStore
	RunInTx(ctx context.Context, fn func(txStore S) error) error
}

// txAdapter exposes a store's own RunInTx as the service's transaction port.
type txAdapter[S transactional[S]] struct {
	store S
}

func (a txAdapter[S]) RunInTx(ctx context.Context, fn func(stores service.TxStores) error) error {
	return a.store.RunInTx(ctx, func(txStore S) error {
		return fn(service.TxStores{Requests: txStore, Friendships: txStore})
	})
}

// NewPostgres wires the module on a Postgres store.
func NewPostgres(st *store.PostgresStore, deps Deps) (*Module, error) {
	return newModule(st, deps)
}

// NewInMemory wires the module on an in-memory store.
func NewInMemory(st *store.InMemoryStore, deps Deps) (*Module, error) {
	return newModule(st, deps)
}

func newModule[S transactional[S]](st S, deps Deps) (*Module, error) {
	opts := []service.Option{
		service.WithLogger(deps.Logger),
		service.WithMetrics(deps.Metrics),
		service.WithAuditPublisher(deps.Audit),
		service.WithTTL(deps.RequestTTL),
		service.WithClock(deps.Clock),
	}

	lifecycle, err := service.NewLifecycleService(st, st, txAdapter[S]{store: st}, opts...)
	if err != nil {
		return nil, err
	}
	queries, err := service.NewQueryService(st, st, opts...)
	if err != nil {
		return nil, err
	}
	sw, err := sweeper.New(st,
		sweeper.WithInterval(deps.SweepInterval),
		sweeper.WithClock(deps.Clock),
		sweeper.WithLogger(deps.Logger),
		sweeper.WithMetrics(deps.Metrics),
		sweeper.WithAuditPublisher(deps.Audit),
	)
	if err != nil {
		return nil, err
	}
	return &Module{Lifecycle: lifecycle, Queries: queries, Sweeper: sw}, nil
}
