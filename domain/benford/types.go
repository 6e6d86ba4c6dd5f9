// Package benford holds the value types produced by a leading-digit
// conformity analysis.
package benford

import (
	"fmt"
	"math"
	"time"

	"gobenford/domain/core"
)

// Digit is a leading significant decimal digit in [1,9].
type Digit int

const (
	MinDigit Digit = 1
	MaxDigit Digit = 9

	// DigitCount is the number of leading-digit categories.
	DigitCount = 9
)

// Valid reports whether d is a possible leading digit.
func (d Digit) Valid() bool {
	return d >= MinDigit && d <= MaxDigit
}

// Digits returns 1..9 in order.
func Digits() []Digit {
	out := make([]Digit, 0, DigitCount)
	for d := MinDigit; d <= MaxDigit; d++ {
		out = append(out, d)
	}
	return out
}

// DigitFrequencyTable holds observed counts. Index i is digit i+1, so the
// digit order is fixed by the type.
type DigitFrequencyTable [DigitCount]int

// Count returns the observed count for d, zero for an invalid digit.
func (t DigitFrequencyTable) Count(d Digit) int {
	if !d.Valid() {
		return 0
	}
	return t[d-1]
}

// Total returns the number of valid observations.
func (t DigitFrequencyTable) Total() int {
	total := 0
	for _, c := range t {
		total += c
	}
	return total
}

// Float64s returns the counts as floats in digit order.
func (t DigitFrequencyTable) Float64s() []float64 {
	out := make([]float64, DigitCount)
	for i, c := range t {
		out[i] = float64(c)
	}
	return out
}

// ExpectedFrequencyTable holds expected counts under Benford's Law,
// indexed like DigitFrequencyTable.
type ExpectedFrequencyTable [DigitCount]float64

// Count returns the expected count for d, zero for an invalid digit.
func (t ExpectedFrequencyTable) Count(d Digit) float64 {
	if !d.Valid() {
		return 0
	}
	return t[d-1]
}

// Total returns the sum of the expected counts.
func (t ExpectedFrequencyTable) Total() float64 {
	total := 0.0
	for _, c := range t {
		total += c
	}
	return total
}

// FitStatistics are the goodness-of-fit results of one analysis.
type FitStatistics struct {
	ChiSquared       float64 `json:"chi_squared"`
	ChiSquaredPValue float64 `json:"chi_squared_p_value"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	KSStatistic      float64 `json:"ks_statistic"`
	KSPValue         float64 `json:"ks_p_value"`
}

// SampleProfile describes the values that went into an analysis.
type SampleProfile struct {
	InputCount     int     `json:"input_count"`
	ValidCount     int     `json:"valid_count"`
	ZeroCount      int     `json:"zero_count"`
	NonFiniteCount int     `json:"non_finite_count"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	StdDev         float64 `json:"std_dev"`
}

// ResultSummary is the immutable outcome of one analysis run.
type ResultSummary struct {
	Column   string                 `json:"column"`
	Observed DigitFrequencyTable    `json:"observed"`
	Expected ExpectedFrequencyTable `json:"expected"`
	Fit      FitStatistics          `json:"fit"`
	Profile  SampleProfile          `json:"profile"`
}

// Row is one aligned line of a summary table.
type Row struct {
	Digit    Digit   `json:"digit"`
	Observed int     `json:"observed"`
	Expected float64 `json:"expected"`
}

// Rows returns the observed/expected table in digit order.
func (s *ResultSummary) Rows() []Row {
	rows := make([]Row, 0, DigitCount)
	for _, d := range Digits() {
		rows = append(rows, Row{
			Digit:    d,
			Observed: s.Observed.Count(d),
			Expected: s.Expected.Count(d),
		})
	}
	return rows
}

// Total returns the number of digits that were counted.
func (s *ResultSummary) Total() int {
	return s.Observed.Total()
}

// Conforms reports whether the chi-squared test fails to reject Benford's
// Law at significance level alpha. The KS result does not take part.
func (s *ResultSummary) Conforms(alpha float64) bool {
	return s.Fit.ChiSquaredPValue >= alpha
}

// Run is a persisted analysis.
type Run struct {
	ID         core.ID        `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	SampleHash core.Hash      `json:"sample_hash"`
	Filter     RangeFilter    `json:"filter"`
	Summary    *ResultSummary `json:"summary"`
}

// RangeFilter keeps values within inclusive bounds. A nil bound is open.
type RangeFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Validate checks that the bounds are ordered and finite.
func (f RangeFilter) Validate() error {
	if f.Min != nil && (math.IsNaN(*f.Min) || math.IsInf(*f.Min, 0)) {
		return fmt.Errorf("%w: minimum must be finite", core.ErrInvalidRange)
	}
	if f.Max != nil && (math.IsNaN(*f.Max) || math.IsInf(*f.Max, 0)) {
		return fmt.Errorf("%w: maximum must be finite", core.ErrInvalidRange)
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return fmt.Errorf("%w: minimum %g is greater than maximum %g", core.ErrInvalidRange, *f.Min, *f.Max)
	}
	return nil
}

// IsOpen reports whether the filter keeps every value.
func (f RangeFilter) IsOpen() bool {
	return f.Min == nil && f.Max == nil
}

// Apply returns the values inside the bounds. NaN is treated as missing
// and always dropped. The input slice is not modified.
func (f RangeFilter) Apply(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if f.Min != nil && v < *f.Min {
			continue
		}
		if f.Max != nil && v > *f.Max {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Bound is a convenience for building a RangeFilter literal.
func Bound(v float64) *float64 {
	return &v
}
