// Package api exposes the analysis service over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gobenford/app"
	apperrors "gobenford/internal/errors"
	"gobenford/internal/logging"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP front of the analysis service
type Server struct {
	router  *gin.Engine
	service *app.AnalysisService
	metrics *Metrics
	logger  *logging.Logger
	alpha   float64
}

// NewServer creates a server and registers its routes. alpha is the
// significance level used for the conformity verdict in responses.
func NewServer(service *app.AnalysisService, logger *logging.Logger, alpha float64) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		router:  gin.New(),
		service: service,
		metrics: NewMetrics(),
		logger:  logger.With("api"),
		alpha:   alpha,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.metrics.Middleware())
	s.router.Use(s.requestLogger())
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := s.router.Group("/api/v1")
	v1.POST("/analyze", s.handleAnalyze)
	v1.GET("/runs", s.handleListRuns)
	v1.GET("/runs/:id", s.handleGetRun)
	v1.GET("/runs/:id/export.csv", s.handleExportRun)
	v1.GET("/runs/:id/report.html", s.handleRunReport)
}

// Handler returns the router for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("elapsed", time.Since(start)))
	}
}

// respondError writes err as {"error", "code"} with the status of its code.
func (s *Server) respondError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", err, logging.String("path", c.Request.URL.Path))
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
