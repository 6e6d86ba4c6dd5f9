package firstdigit

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"gobenford/domain/benford"
	"gobenford/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EndToEnd(t *testing.T) {
	samples := []float64{123, 234, 111, 19, 5, 88, 712, 34, 256, 91}

	summary, err := Analyze(samples, "amount")
	require.NoError(t, err)

	assert.Equal(t, "amount", summary.Column)
	assert.Equal(t, benford.DigitFrequencyTable{3, 2, 1, 0, 1, 0, 1, 1, 1}, summary.Observed)
	assert.Equal(t, 10, summary.Total())

	for _, d := range benford.Digits() {
		assert.Equal(t, ExpectedProbability(d)*10, summary.Expected.Count(d))
	}

	rows := summary.Rows()
	require.Len(t, rows, benford.DigitCount)
	assert.Equal(t, benford.Digit(1), rows[0].Digit)
	assert.Equal(t, 3, rows[0].Observed)
	assert.Equal(t, benford.Digit(9), rows[8].Digit)

	assert.Equal(t, 10, summary.Profile.InputCount)
	assert.Equal(t, 10, summary.Profile.ValidCount)
	assert.Equal(t, 5.0, summary.Profile.Min)
	assert.Equal(t, 712.0, summary.Profile.Max)
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze(nil, "amount")
	assert.True(t, errors.Is(err, core.ErrNoData))

	_, err = Analyze([]float64{}, "amount")
	assert.True(t, errors.Is(err, core.ErrNoData))
}

func TestAnalyze_OnlyZeros(t *testing.T) {
	_, err := Analyze([]float64{0, 0, -0.0}, "balance")
	require.Error(t, err)
	assert.True(t, core.IsNoDataError(err))
	assert.Contains(t, err.Error(), "balance")
}

func TestAnalyze_SingleValue(t *testing.T) {
	summary, err := Analyze([]float64{42}, "single")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total())
	assert.Equal(t, 1, summary.Observed.Count(4))

	fit := summary.Fit
	for name, v := range map[string]float64{
		"chi_squared":   fit.ChiSquared,
		"chi_squared_p": fit.ChiSquaredPValue,
		"ks":            fit.KSStatistic,
		"ks_p":          fit.KSPValue,
	} {
		assert.False(t, math.IsNaN(v), "%s is NaN", name)
		assert.False(t, math.IsInf(v, 0), "%s is infinite", name)
	}
}

func TestAnalyze_ZerosAreDiscardedNotCounted(t *testing.T) {
	summary, err := Analyze([]float64{0, 3, 0, 30, 0.3}, "mixed")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total())
	assert.Equal(t, 3, summary.Observed.Count(3))
	assert.Equal(t, 2, summary.Profile.ZeroCount)
	assert.InDelta(t, 3.0, summary.Expected.Total(), 1e-9)
}

func TestAnalyze_Concurrent(t *testing.T) {
	samples := benfordSample(5000)
	want, err := Analyze(samples, "shared")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*benford.ResultSummary, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			own := append([]float64(nil), samples...)
			results[i], _ = Analyze(own, "shared")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Equal(t, want, got)
	}
}

func TestAnalyze_LargeMagnitudesSerialize(t *testing.T) {
	summary, err := Analyze([]float64{1e200, 3e200}, "huge")
	require.NoError(t, err)

	assert.InEpsilon(t, 1e200, summary.Profile.StdDev, 1e-12)
	_, err = json.Marshal(summary)
	assert.NoError(t, err)
}
