package firstdigit

import (
	"gobenford/domain/benford"
)

// chiSquareDegreesOfFreedom is categories minus one; no parameters are
// estimated from the data.
const chiSquareDegreesOfFreedom = benford.DigitCount - 1

// chiSquareStatistic is Pearson's statistic over the nine digit
// categories. Both tables share the digit index, so no alignment step
// is needed. Categories with no expected mass are skipped.
func chiSquareStatistic(observed benford.DigitFrequencyTable, expected benford.ExpectedFrequencyTable) float64 {
	chiSq := 0.0
	for i := range observed {
		e := expected[i]
		if e <= 0 {
			continue
		}
		diff := float64(observed[i]) - e
		chiSq += diff * diff / e
	}
	return chiSq
}
