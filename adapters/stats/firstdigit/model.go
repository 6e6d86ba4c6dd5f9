package firstdigit

import (
	"math"

	"gobenford/domain/benford"
)

// ExpectedProbability is Benford's probability log10(1 + 1/d) for a
// leading digit d. It is zero outside 1..9.
func ExpectedProbability(d benford.Digit) float64 {
	if !d.Valid() {
		return 0
	}
	return math.Log10(1 + 1/float64(d))
}

// ExpectedDistribution returns the probabilities of digits 1..9, indexed
// by digit-1.
func ExpectedDistribution() [benford.DigitCount]float64 {
	var p [benford.DigitCount]float64
	for _, d := range benford.Digits() {
		p[d-1] = ExpectedProbability(d)
	}
	return p
}

// ExpectedCounts scales the Benford distribution to total observations.
func ExpectedCounts(total int) benford.ExpectedFrequencyTable {
	var expected benford.ExpectedFrequencyTable
	for i, p := range ExpectedDistribution() {
		expected[i] = p * float64(total)
	}
	return expected
}
