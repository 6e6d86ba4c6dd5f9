package main

import (
	"context"
	"os"

	"gobenford/adapters/db/migrations"
	"gobenford/internal/config"
	"gobenford/internal/logging"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewDefaultLogger("migrate")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", err)
		os.Exit(1)
	}

	logger.Info("starting migration", logging.String("driver", cfg.Database.Driver))

	ctx := context.Background()
	conn, err := sqlx.ConnectContext(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", err)
		os.Exit(1)
	}
	defer conn.Close()

	applied, err := migrations.NewMigrator(conn).Up(ctx)
	if err != nil {
		logger.Error("migration failed", err)
		os.Exit(1)
	}

	for _, version := range applied {
		logger.Info("applied migration", logging.String("version", version))
	}
	logger.Info("migration complete", logging.Int("applied", len(applied)))
}
