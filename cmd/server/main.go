package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"divelog/internal/audit"
	"divelog/internal/friends"
	friendmetrics "divelog/internal/friends/metrics"
	"divelog/internal/friends/store"
	"divelog/internal/platform/config"
	"divelog/internal/platform/httpserver"
	"divelog/internal/platform/logger"
	"divelog/internal/platform/metrics"
	"divelog/internal/platform/postgres"
)

const shutdownTimeout = 10 * time.Second

// main wires the friends module onto Postgres, runs the expiry sweeper and
// the audit worker, and serves /metrics and /healthz until interrupted.
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	db, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db.DB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	reg := metrics.NewRegistry()
	checks := map[string]httpserver.HealthCheck{"postgres": db.Health}

	g, gctx := errgroup.WithContext(ctx)

	auditStore, err := buildAuditSink(gctx, cfg.Audit, log, g, checks)
	if err != nil {
		return err
	}

	module, err := friends.NewPostgres(
		store.NewPostgres(db.DB, store.WithTxTimeout(cfg.Friends.TxTimeout)),
		friends.Deps{
			Logger:        log,
			Metrics:       friendmetrics.New(reg),
			Audit:         audit.NewPublisher(auditStore),
			RequestTTL:    cfg.Friends.RequestTTL,
			SweepInterval: cfg.Friends.SweepInterval,
		},
	)
	if err != nil {
		return err
	}

	g.Go(func() error {
		if err := module.Sweeper.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	srv := httpserver.New(cfg.Ops.Addr, httpserver.NewOpsRouter(metrics.Handler(reg), checks))
	g.Go(func() error {
		log.Info("ops server listening", "addr", cfg.Ops.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// buildAuditSink returns the store lifecycle events are published to. With
// brokers configured, events go through a bounded buffer drained to Kafka by a
// worker in g; otherwise they are logged.
func buildAuditSink(ctx context.Context, cfg config.AuditConfig, log *slog.Logger, g *errgroup.Group, checks map[string]httpserver.HealthCheck) (audit.Store, error) {
	if len(cfg.Brokers) == 0 {
		log.Info("audit events go to the log; no brokers configured")
		return audit.NewLogStore(log), nil
	}

	kafka, err := audit.NewKafkaStore(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, err
	}
	if err := kafka.EnsureTopic(ctx, 3, 1); err != nil {
		kafka.Close()
		return nil, err
	}
	checks["kafka"] = kafka.Ping

	buffer := audit.NewBuffer(cfg.BufferSize)
	worker := audit.NewWorker(kafka, buffer.Inbox(), log)
	g.Go(func() error {
		defer kafka.Close()
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return buffer, nil
}
