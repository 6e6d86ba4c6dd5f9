package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gobenford/domain/benford"
	"gobenford/domain/core"
	"gobenford/ports"

	"github.com/jmoiron/sqlx"
)

const defaultListLimit = 50

// RunRepositoryImpl implements RunRepository with sqlx
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

type runRow struct {
	ID               string    `db:"id"`
	ColumnName       string    `db:"column_name"`
	SampleHash       string    `db:"sample_hash"`
	TotalCount       int       `db:"total_count"`
	ChiSquaredPValue float64   `db:"chi_squared_p_value"`
	KSPValue         float64   `db:"ks_p_value"`
	Filter           string    `db:"filter"`
	Summary          string    `db:"summary"`
	CreatedAt        time.Time `db:"created_at"`
}

func (r runRow) toRun() (*benford.Run, error) {
	run := &benford.Run{
		ID:         core.ID(r.ID),
		CreatedAt:  r.CreatedAt.UTC(),
		SampleHash: core.Hash(r.SampleHash),
		Summary:    &benford.ResultSummary{},
	}
	if err := json.Unmarshal([]byte(r.Filter), &run.Filter); err != nil {
		return nil, fmt.Errorf("decode filter of run %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Summary), run.Summary); err != nil {
		return nil, fmt.Errorf("decode summary of run %s: %w", r.ID, err)
	}
	return run, nil
}

// SaveRun inserts a completed run
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *benford.Run) error {
	if run.Summary == nil {
		return fmt.Errorf("run %s has no summary", run.ID)
	}

	filter, err := json.Marshal(run.Filter)
	if err != nil {
		return err
	}
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO analysis_runs (id, column_name, sample_hash, total_count, chi_squared_p_value, ks_p_value, filter, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), run.ID.String(), run.Summary.Column, run.SampleHash.String(), run.Summary.Total(),
		run.Summary.Fit.ChiSquaredPValue, run.Summary.Fit.KSPValue,
		string(filter), string(summary), run.CreatedAt.UTC())
	return err
}

// GetRun retrieves a run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.ID) (*benford.Run, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT id, column_name, sample_hash, total_count, chi_squared_p_value, ks_p_value, filter, summary, created_at
		FROM analysis_runs
		WHERE id = ?
	`), id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row.toRun()
}

// ListRuns returns the most recent runs first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*benford.Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT id, column_name, sample_hash, total_count, chi_squared_p_value, ks_p_value, filter, summary, created_at
		FROM analysis_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, err
	}

	runs := make([]*benford.Run, 0, len(rows))
	for _, row := range rows {
		run, err := row.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
