package container

import (
	"context"
	"path/filepath"
	"testing"

	"gobenford/domain/benford"
	"gobenford/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "container.db"))
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNew(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	c, err := New(testConfig(t), nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Service)
	assert.False(t, c.Service.HasHistory())

	lo, hi := c.Analyzer.Evaluator().Reference()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 9.0, hi)
}

func TestNew_InvalidReference(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.KSUniformMin = 9
	cfg.Analysis.KSUniformMax = 1

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestInitWithDatabase(t *testing.T) {
	ctx := context.Background()
	c, err := New(testConfig(t), nil)
	require.NoError(t, err)

	require.NoError(t, c.InitWithDatabase(ctx))
	t.Cleanup(func() { c.Shutdown() })
	assert.True(t, c.Service.HasHistory())

	run, err := c.Service.AnalyzeSample(ctx, "amount", []float64{1, 2, 3}, benford.RangeFilter{})
	require.NoError(t, err)

	stored, err := c.RunRepo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Summary.Observed, stored.Summary.Observed)
}
