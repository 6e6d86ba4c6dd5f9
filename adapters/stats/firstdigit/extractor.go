package firstdigit

import (
	"math"
	"strconv"

	"gobenford/domain/benford"
	"gobenford/domain/core"
)

// LeadingDigit returns the first significant decimal digit of |x|.
// Zero, NaN and infinities have no leading digit.
func LeadingDigit(x float64) (benford.Digit, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	x = math.Abs(x)
	if x == 0 {
		return 0, false
	}

	// Shortest round-trip scientific form always starts with the first
	// significant digit, e.g. 0.042 -> "4.2e-02".
	s := strconv.FormatFloat(x, 'e', -1, 64)
	d := benford.Digit(s[0] - '0')
	if !d.Valid() {
		return 0, false
	}
	return d, true
}

// ExtractLeadingDigits counts the leading digits of samples. It also
// returns the digits in sample order for the KS test. Values without a
// leading digit are skipped; if none remain the result is ErrNoData.
func ExtractLeadingDigits(samples []float64) (benford.DigitFrequencyTable, []benford.Digit, error) {
	var table benford.DigitFrequencyTable
	digits := make([]benford.Digit, 0, len(samples))

	for _, v := range samples {
		d, ok := LeadingDigit(v)
		if !ok {
			continue
		}
		table[d-1]++
		digits = append(digits, d)
	}

	if len(digits) == 0 {
		return table, nil, core.ErrNoData
	}
	return table, digits, nil
}
