// Package store persists friend requests and friendships.
//
// PostgresStore is the production implementation; InMemoryStore mirrors its
// semantics for tests and local runs. Both return sentinel errors and leave
// domain translation to the service layer.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"divelog/pkg/platform/sentinel"
	"divelog/pkg/platform/tx"
)

// Postgres error codes the store maps to sentinels.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore implements both the request and the friendship store on one
// connection pool or one open transaction.
type PostgresStore struct {
	db        dbtx
	pool      *sql.DB
	txTimeout time.Duration
}

type PostgresOption func(*PostgresStore)

// WithTxTimeout bounds transactions started without a caller deadline.
func WithTxTimeout(timeout time.Duration) PostgresOption {
	return func(s *PostgresStore) {
		if timeout > 0 {
			s.txTimeout = timeout
		}
	}
}

// NewPostgres constructs a store backed by the pool.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, pool: db, txTimeout: tx.DefaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewPostgresTx binds a store to an open transaction.
func NewPostgresTx(sqlTx *sql.Tx) *PostgresStore {
	return &PostgresStore{db: sqlTx}
}

// RunInTx runs fn with a store bound to a new transaction. Calling it on a store
// that is already transaction-bound reuses that transaction.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(txStore *PostgresStore) error) error {
	if s.pool == nil {
		return fn(s)
	}
	return tx.Run(ctx, s.pool, s.txTimeout, func(sqlTx *sql.Tx) error {
		return fn(NewPostgresTx(sqlTx))
	})
}

// mapWriteError converts constraint violations into sentinel errors so callers
// can branch with errors.Is. The driver error stays in the chain.
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrNotFound, err)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrInvalidState, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func rowsAffected(op string, res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return int(n), nil
}
