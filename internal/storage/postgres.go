package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

// Connect opens a pgx connection pool against the configured database
func Connect(ctx context.Context, url string, logger *logrus.Logger) (*pgxpool.Pool, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.Connect(connectCtx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database")
	return pool, nil
}

// EnsureSchema creates the two bot tables when they do not exist yet.
// There is no schema versioning.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
CREATE TABLE IF NOT EXISTS google_meet_guests (
    id    BIGSERIAL PRIMARY KEY,
    name  VARCHAR(50)  NOT NULL,
    email VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS jira_users (
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR(100),
    telegram_id BIGINT,
    email       VARCHAR(100),
    account_id  VARCHAR(100) NOT NULL
);
`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
