package app

import (
	"context"
	"fmt"
	"time"

	"gobenford/adapters/stats/firstdigit"
	"gobenford/domain/benford"
	"gobenford/domain/core"
	apperrors "gobenford/internal/errors"
	"gobenford/internal/logging"
	"gobenford/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const defaultMaxConcurrentColumns = 4

// AnalysisService runs first-digit analyses and records them as runs
type AnalysisService struct {
	analyzer      *firstdigit.Analyzer
	repo          ports.RunRepository
	logger        *logging.Logger
	maxConcurrent int64
	now           func() time.Time
}

// NewAnalysisService creates an analysis service. repo may be nil, in which
// case runs are returned but not stored.
func NewAnalysisService(analyzer *firstdigit.Analyzer, repo ports.RunRepository, logger *logging.Logger, maxConcurrent int) *AnalysisService {
	if analyzer == nil {
		analyzer = firstdigit.NewAnalyzer(nil)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentColumns
	}
	return &AnalysisService{
		analyzer:      analyzer,
		repo:          repo,
		logger:        logger.With("analysis_service"),
		maxConcurrent: int64(maxConcurrent),
		now:           time.Now,
	}
}

// HasHistory reports whether runs are persisted.
func (s *AnalysisService) HasHistory() bool {
	return s.repo != nil
}

// AnalyzeSample filters values, tests them against Benford's Law and stores
// the resulting run.
func (s *AnalysisService) AnalyzeSample(ctx context.Context, column string, values []float64, filter benford.RangeFilter) (*benford.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "invalid range filter")
	}

	start := time.Now()
	samples := filter.Apply(values)

	summary, err := s.analyzer.Analyze(samples, column)
	if err != nil {
		s.logger.Warn("analysis rejected",
			logging.String("column", column),
			logging.Int("input_count", len(values)),
			logging.Err(err))
		return nil, apperrors.Wrapf(err, "analyze column %q", column)
	}

	run := &benford.Run{
		ID:         core.NewID(),
		CreatedAt:  s.now().UTC(),
		SampleHash: core.ComputeSampleHash(samples),
		Filter:     filter,
		Summary:    summary,
	}

	if s.repo != nil {
		if err := s.repo.SaveRun(ctx, run); err != nil {
			s.logger.Error("failed to save run", err, logging.String("run_id", run.ID.String()))
			return nil, apperrors.DatabaseError("failed to save run", err)
		}
	}

	s.logger.Info("analysis completed",
		logging.String("run_id", run.ID.String()),
		logging.String("column", column),
		logging.Int("digits", summary.Total()),
		logging.Float64("chi_squared_p_value", summary.Fit.ChiSquaredPValue),
		logging.Float64("ks_p_value", summary.Fit.KSPValue),
		logging.Duration("elapsed", time.Since(start)))

	return run, nil
}

// AnalyzeDataset analyzes several columns of one dataset concurrently.
// An empty column list selects every numeric column. Runs are returned in
// column order; the first failure cancels the remaining columns.
func (s *AnalysisService) AnalyzeDataset(ctx context.Context, source ports.ColumnSource, columns []string, filter benford.RangeFilter) ([]*benford.Run, error) {
	if err := filter.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "invalid range filter")
	}
	if len(columns) == 0 {
		columns = source.NumericColumns()
	}
	if len(columns) == 0 {
		return nil, apperrors.Wrap(core.ErrNoData, "dataset has no numeric columns")
	}

	runs := make([]*benford.Run, len(columns))
	sem := semaphore.NewWeighted(s.maxConcurrent)
	g, gctx := errgroup.WithContext(ctx)

	for i, column := range columns {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		i, column := i, column
		g.Go(func() error {
			defer sem.Release(1)

			values, err := source.NumericColumn(column)
			if err != nil {
				return apperrors.Wrapf(err, "load column %q", column)
			}
			run, err := s.AnalyzeSample(gctx, column, values, filter)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun loads a stored run
func (s *AnalysisService) GetRun(ctx context.Context, id core.ID) (*benford.Run, error) {
	if s.repo == nil {
		return nil, apperrors.InternalError("run history is not configured")
	}
	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, apperrors.Wrapf(err, "get run %s", id)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *AnalysisService) ListRuns(ctx context.Context, limit int) ([]*benford.Run, error) {
	if s.repo == nil {
		return nil, apperrors.InternalError("run history is not configured")
	}
	runs, err := s.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "list runs")
	}
	return runs, nil
}

// String describes the service configuration for startup logs.
func (s *AnalysisService) String() string {
	lo, hi := s.analyzer.Evaluator().Reference()
	return fmt.Sprintf("ks_reference=[%g,%g] max_concurrent=%d history=%t", lo, hi, s.maxConcurrent, s.HasHistory())
}
