package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Pool is the shared PostgreSQL connection pool.
type Pool struct {
	*pgxpool.Pool
}

// Connect opens a pool to dsn, retrying while the database starts up.
func Connect(ctx context.Context, dsn string, logger *logrus.Logger) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= 10; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				logger.Info("Connected to PostgreSQL")
				return &Pool{pool}, nil
			}
			pool.Close()
		}
		logger.WithError(err).Warnf("PostgreSQL not ready (attempt %d/10)", attempt)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
}

// Migrate creates missing tables. Existing data is never touched.
func (p *Pool) Migrate(ctx context.Context) error {
	_, err := p.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id             TEXT PRIMARY KEY,
			type           TEXT NOT NULL,
			account_number TEXT NOT NULL,
			balance        NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (balance >= 0)
		);

		CREATE TABLE IF NOT EXISTS transfers (
			id                       UUID PRIMARY KEY,
			amount                   NUMERIC(18,2) NOT NULL,
			currency                 TEXT NOT NULL,
			source_account_id        TEXT NOT NULL,
			destination_type         TEXT NOT NULL,
			destination_account_id   TEXT NOT NULL DEFAULT '',
			recipient_name           TEXT NOT NULL DEFAULT '',
			recipient_account_number TEXT NOT NULL DEFAULT '',
			recipient_bank_name      TEXT NOT NULL DEFAULT '',
			ifsc_code                TEXT NOT NULL DEFAULT '',
			description              TEXT NOT NULL DEFAULT '',
			status                   TEXT NOT NULL,
			scheduled_for            TIMESTAMPTZ,
			failure_reason           TEXT NOT NULL DEFAULT '',
			created_at               TIMESTAMPTZ NOT NULL,
			completed_at             TIMESTAMPTZ
		);

		CREATE INDEX IF NOT EXISTS transfers_due_idx
			ON transfers (scheduled_for) WHERE status = 'scheduled';
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
