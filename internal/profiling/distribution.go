package profiling

import (
	"math"

	"gobenford/domain/benford"

	"github.com/montanaflynn/stats"
)

// DistributionAnalyzer summarises the values of an analyzed sample
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Profile classifies every input value and computes summary statistics
// over the values that carry a leading digit (finite and non-zero).
func (da *DistributionAnalyzer) Profile(values []float64) (benford.SampleProfile, error) {
	profile := benford.SampleProfile{InputCount: len(values)}

	valid := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			profile.NonFiniteCount++
		case v == 0:
			profile.ZeroCount++
		default:
			valid = append(valid, v)
		}
	}
	profile.ValidCount = len(valid)

	if len(valid) == 0 {
		return profile, stats.ErrEmptyInput
	}

	var err error
	if profile.Min, err = valid.Min(); err != nil {
		return profile, err
	}
	if profile.Max, err = valid.Max(); err != nil {
		return profile, err
	}

	// Moments are taken on values scaled into [-1, 1] so sums of large
	// magnitudes cannot overflow.
	scale := math.Max(math.Abs(profile.Min), math.Abs(profile.Max))
	scaled := make(stats.Float64Data, len(valid))
	for i, v := range valid {
		scaled[i] = v / scale
	}

	if profile.Mean, err = scaled.Mean(); err != nil {
		return profile, err
	}
	if profile.Median, err = scaled.Median(); err != nil {
		return profile, err
	}
	if profile.StdDev, err = scaled.StandardDeviation(); err != nil {
		return profile, err
	}
	profile.Mean *= scale
	profile.Median *= scale
	profile.StdDev *= scale

	return profile, nil
}
