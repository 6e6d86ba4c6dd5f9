package firstdigit

import (
	"math"
	"sort"

	"gobenford/domain/benford"
)

// ksStatistic is the two-sided one-sample Kolmogorov-Smirnov distance
// between the empirical distribution of digits and cdf.
func ksStatistic(digits []benford.Digit, cdf func(float64) float64) float64 {
	n := len(digits)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	for i, d := range digits {
		sorted[i] = float64(d)
	}
	sort.Float64s(sorted)

	nf := float64(n)
	dPlus, dMinus := 0.0, 0.0
	for i, x := range sorted {
		f := cdf(x)
		dPlus = math.Max(dPlus, float64(i+1)/nf-f)
		dMinus = math.Max(dMinus, f-float64(i)/nf)
	}

	return math.Min(math.Max(dPlus, dMinus), 1)
}
