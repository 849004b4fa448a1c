// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"vendormatch-workers/internal/common/config"
	"vendormatch-workers/internal/common/errors"
)

// NewPostgresConnection opens a pooled connection and verifies it with a ping.
func NewPostgresConnection(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}

	return db, nil
}

// PostgresHealthCheck pings the database with a short deadline.
func PostgresHealthCheck(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}
