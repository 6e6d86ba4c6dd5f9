package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gobenford/internal/api"
	"gobenford/internal/config"
	"gobenford/internal/container"
	"gobenford/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewDefaultLogger("benford-api")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	c, err := container.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := c.InitWithDatabase(ctx); err != nil {
		return err
	}
	defer c.Shutdown()

	logger.Info("analysis service ready", logging.String("config", c.Service.String()))

	server := api.NewServer(c.Service, logger, cfg.Analysis.SignificanceLevel)
	return server.Run(ctx, ":"+cfg.Server.Port)
}
