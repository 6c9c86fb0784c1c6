package db

import (
	"context"
	"database/sql"
	"fmt"

	"usersvc/internal/config"
	"usersvc/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Client owns the process-wide connection pool. It is created once at
// startup, shared by reference across all request handlers, and closed once
// at shutdown.
type Client struct {
	db     *sql.DB
	logger logging.Logger
}

func NewClient(ctx context.Context, cfg config.PostgresConfig, logger logging.Logger) (*Client, error) {
	dsn := cfg.EffectiveDSN()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	// Verify connectivity before handing the pool out.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return &Client{
		db:     db,
		logger: logger.With("component", "db_client"),
	}, nil
}

// DB returns the underlying pool.
func (c *Client) DB() *sql.DB {
	return c.db
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
