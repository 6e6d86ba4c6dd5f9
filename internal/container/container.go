package container

import (
	"context"
	"fmt"

	"gobenford/adapters/db"
	"gobenford/adapters/stats/firstdigit"
	"gobenford/app"
	"gobenford/internal/config"
	"gobenford/internal/logging"
	"gobenford/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *logging.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	RunRepo ports.RunRepository

	Analyzer *firstdigit.Analyzer
	Service  *app.AnalysisService
}

// New creates a container with an in-memory service. Call InitWithDatabase
// to enable run history.
func New(cfg *config.Config, logger *logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	evaluator, err := firstdigit.NewFitEvaluatorWithReference(cfg.Analysis.KSUniformMin, cfg.Analysis.KSUniformMax)
	if err != nil {
		return nil, fmt.Errorf("failed to create fit evaluator: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Analyzer: firstdigit.NewAnalyzer(evaluator),
	}
	c.initService()
	return c, nil
}

// InitWithDatabase opens the history database, applies migrations and
// rebuilds the service on top of the run repository.
func (c *Container) InitWithDatabase(ctx context.Context) error {
	conn, err := db.Open(ctx, c.Config.Database.Driver, c.Config.Database.URL)
	if err != nil {
		return err
	}

	c.DB = conn
	c.RunRepo = db.NewRunRepository(conn)
	c.initService()

	c.Logger.Info("container initialized with database",
		logging.String("driver", c.Config.Database.Driver))
	return nil
}

func (c *Container) initService() {
	c.Service = app.NewAnalysisService(c.Analyzer, c.RunRepo, c.Logger, c.Config.Analysis.MaxConcurrentColumns)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
