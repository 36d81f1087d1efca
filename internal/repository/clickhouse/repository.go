package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation, network string, err error, started time.Time)
	}

	// Conn is the part of a ClickHouse connection the repository uses.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		Close() error
	}

	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}

	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}
)

type Repository struct {
	conn    Conn
	metrics Metrics
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: nativeConn{conn: conn}, metrics: metrics}, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	if r.conn == nil {
		return nil
	}
	if err := r.conn.Close(); err != nil {
		return fmt.Errorf("close clickhouse connection: %w", err)
	}
	return nil
}

type nativeConn struct {
	conn driver.Conn
}

func (c nativeConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return c.conn.PrepareBatch(ctx, query)
}

func (c nativeConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, query, args...)
}

func (c nativeConn) Close() error {
	return c.conn.Close()
}
