package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/bookshelf-server/database"
)

type Connection struct {
	*pgxpool.Pool
}

// NewConnection opens a pool for dsn and brings the schema up to date.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{
		Pool: pool,
	}, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}

// InTx runs fn in a read-committed transaction. Rows locked with
// FOR UPDATE inside fn stay locked until it returns.
func (s *Connection) InTx(ctx context.Context, fn func(pgx.Tx) error) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return pgx.BeginTxFunc(ctx, s.Pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

type scanner interface {
	Scan(dest ...any) error
}

// rowResult maps a single-row error: no row becomes sentinel, anything else
// is wrapped with action. An INSERT ... ON CONFLICT DO NOTHING RETURNING
// yields no row on conflict, so sentinel is the duplicate error there.
func rowResult(err, sentinel error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return sentinel
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

// deleteResult reports notFound when the DELETE matched nothing.
func deleteResult(tag pgconn.CommandTag, err, notFound error, action string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
