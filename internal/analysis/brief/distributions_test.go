package brief

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChiSquarePValue(t *testing.T) {
	sd := NewDistributions()

	// 15.507 is the 5% critical value for 8 degrees of freedom.
	assert.InDelta(t, 0.05, sd.ChiSquarePValue(15.507, 8), 1e-3)
	// 20.090 is the 1% critical value for 8 degrees of freedom.
	assert.InDelta(t, 0.01, sd.ChiSquarePValue(20.090, 8), 1e-3)

	assert.Equal(t, 1.0, sd.ChiSquarePValue(0, 8))
	assert.Equal(t, 1.0, sd.ChiSquarePValue(3, 0))
	assert.Equal(t, 1.0, sd.ChiSquarePValue(math.NaN(), 8))
	assert.Equal(t, 0.0, sd.ChiSquarePValue(math.Inf(1), 8))
	assert.Less(t, sd.ChiSquarePValue(5000, 8), 1e-12)
}

func TestUniformCDF(t *testing.T) {
	sd := NewDistributions()

	assert.Equal(t, 0.0, sd.UniformCDF(1, 1, 9))
	assert.InDelta(t, 0.375, sd.UniformCDF(4, 1, 9), 1e-12)
	assert.Equal(t, 1.0, sd.UniformCDF(9, 1, 9))
	assert.Equal(t, 0.0, sd.UniformCDF(-3, 1, 9))
	assert.Equal(t, 1.0, sd.UniformCDF(12, 1, 9))

	// Degenerate support behaves like a point mass.
	assert.Equal(t, 0.0, sd.UniformCDF(0, 1, 1))
	assert.Equal(t, 1.0, sd.UniformCDF(1, 1, 1))
}

func TestKolmogorovSmirnovPValue_ClosedForms(t *testing.T) {
	sd := NewDistributions()

	tests := []struct {
		name string
		d    float64
		n    int
		want float64
	}{
		{"single observation", 0.625, 1, 0.75},
		{"single observation at the minimum", 0.5, 1, 1.0},
		{"two observations, middle range", 0.3, 2, 1 - 0.02},
		{"two observations, upper tail", 0.6, 2, 2 * 0.4 * 0.4},
		{"below the support", 0.01, 10, 1.0},
		{"maximal distance", 1.0, 50, 0.0},
		{"zero statistic", 0, 50, 1.0},
		{"empty sample", 0.5, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, sd.KolmogorovSmirnovPValue(tt.d, tt.n), 1e-9)
		})
	}
}

func TestKolmogorovSmirnovPValue_CriticalValues(t *testing.T) {
	sd := NewDistributions()

	// Tabulated two-sided 5% critical values.
	assert.InDelta(t, 0.05, sd.KolmogorovSmirnovPValue(0.409, 10), 0.005)
	assert.InDelta(t, 0.05, sd.KolmogorovSmirnovPValue(0.294, 20), 0.005)

	// Large samples fall back to the limiting distribution.
	n := 2000
	d := 1.3581 / math.Sqrt(float64(n))
	assert.InDelta(t, 0.05, sd.KolmogorovSmirnovPValue(d, n), 0.003)
}

func TestKolmogorovSmirnovPValue_Monotone(t *testing.T) {
	sd := NewDistributions()

	for _, n := range []int{5, 37, 400, 5000} {
		prev := 1.0
		for d := 0.0; d <= 1.0; d += 0.01 {
			p := sd.KolmogorovSmirnovPValue(d, n)
			if p < 0 || p > 1 || math.IsNaN(p) {
				t.Fatalf("n=%d d=%.2f: p-value %v outside [0,1]", n, d, p)
			}
			if p > prev+1e-6 {
				t.Fatalf("n=%d d=%.2f: p-value increased from %v to %v", n, d, prev, p)
			}
			prev = p
		}
	}
}

func TestKolmogorovSurvival(t *testing.T) {
	// Q(1.3581) is the asymptotic 5% point; both series must agree near the switch.
	assert.InDelta(t, 0.05, kolmogorovSurvival(1.3581), 1e-4)
	assert.InDelta(t, kolmogorovSurvival(1.1799), kolmogorovSurvival(1.1801), 1e-3)
	assert.Equal(t, 1.0, kolmogorovSurvival(0))
}
