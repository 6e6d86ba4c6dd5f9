package benford

import (
	"errors"
	"math"
	"testing"

	"gobenford/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitFrequencyTable(t *testing.T) {
	var table DigitFrequencyTable
	table[0] = 3
	table[8] = 2

	assert.Equal(t, 3, table.Count(1))
	assert.Equal(t, 2, table.Count(9))
	assert.Equal(t, 0, table.Count(0))
	assert.Equal(t, 0, table.Count(10))
	assert.Equal(t, 5, table.Total())
	assert.Equal(t, []float64{3, 0, 0, 0, 0, 0, 0, 0, 2}, table.Float64s())
}

func TestDigits(t *testing.T) {
	digits := Digits()
	require.Len(t, digits, DigitCount)
	for i, d := range digits {
		assert.Equal(t, Digit(i+1), d)
		assert.True(t, d.Valid())
	}
	assert.False(t, Digit(0).Valid())
}

func TestResultSummaryRows(t *testing.T) {
	summary := &ResultSummary{
		Column:   "amount",
		Observed: DigitFrequencyTable{3, 2, 1, 0, 1, 0, 1, 1, 1},
		Expected: ExpectedFrequencyTable{3.01, 1.76, 1.25, 0.97, 0.79, 0.67, 0.58, 0.51, 0.46},
		Fit:      FitStatistics{ChiSquaredPValue: 0.2},
	}

	rows := summary.Rows()
	require.Len(t, rows, DigitCount)
	for i, row := range rows {
		assert.Equal(t, Digit(i+1), row.Digit, "rows must be in digit order")
		assert.Equal(t, summary.Observed[i], row.Observed)
		assert.Equal(t, summary.Expected[i], row.Expected)
	}
	assert.Equal(t, 10, summary.Total())
	assert.True(t, summary.Conforms(0.05))
	assert.False(t, summary.Conforms(0.5))
}

func TestRangeFilter_Apply(t *testing.T) {
	values := []float64{-5, 0, 1, 10, math.NaN(), 100, 1000}

	tests := []struct {
		name   string
		filter RangeFilter
		want   []float64
	}{
		{"open filter drops only NaN", RangeFilter{}, []float64{-5, 0, 1, 10, 100, 1000}},
		{"min only", RangeFilter{Min: Bound(10)}, []float64{10, 100, 1000}},
		{"max only", RangeFilter{Max: Bound(1)}, []float64{-5, 0, 1}},
		{"both bounds inclusive", RangeFilter{Min: Bound(1), Max: Bound(100)}, []float64{1, 10, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Apply(values))
		})
	}
	assert.Len(t, values, 7, "Apply must not modify its input")
}

func TestRangeFilter_Validate(t *testing.T) {
	assert.NoError(t, RangeFilter{}.Validate())
	assert.NoError(t, RangeFilter{Min: Bound(1), Max: Bound(1)}.Validate())

	err := RangeFilter{Min: Bound(5), Max: Bound(1)}.Validate()
	assert.True(t, errors.Is(err, core.ErrInvalidRange))

	err = RangeFilter{Max: Bound(math.Inf(1))}.Validate()
	assert.True(t, errors.Is(err, core.ErrInvalidRange))

	assert.True(t, RangeFilter{}.IsOpen())
	assert.False(t, RangeFilter{Min: Bound(0)}.IsOpen())
}
