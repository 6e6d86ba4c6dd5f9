// Package db stores analysis runs in SQLite or PostgreSQL through sqlx.
package db

import (
	"context"
	"fmt"

	"gobenford/adapters/db/migrations"
	"gobenford/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the database and applies pending migrations.
func Open(ctx context.Context, driver, url string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent column runs.
		conn.SetMaxOpenConns(1)
	}

	if _, err := migrations.NewMigrator(conn).Up(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return conn, nil
}
