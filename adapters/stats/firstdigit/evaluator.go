package firstdigit

import (
	"fmt"
	"math"

	"gobenford/domain/benford"
	"gobenford/domain/core"
	"gobenford/internal/analysis/brief"
)

// Bounds of the uniform reference used by the KS test.
const (
	DefaultReferenceMin = 1.0
	DefaultReferenceMax = 9.0
)

// FitEvaluator compares observed leading digits with Benford's Law.
//
// The chi-squared test is the primary verdict. The KS test compares the
// raw digits against a continuous uniform distribution, not the Benford
// curve, and is reported as a weaker supplementary signal.
type FitEvaluator struct {
	distributions *brief.StatisticalDistributions
	referenceMin  float64
	referenceMax  float64
}

// NewFitEvaluator creates an evaluator with the uniform [1,9] reference.
func NewFitEvaluator() *FitEvaluator {
	return &FitEvaluator{
		distributions: brief.NewDistributions(),
		referenceMin:  DefaultReferenceMin,
		referenceMax:  DefaultReferenceMax,
	}
}

// NewFitEvaluatorWithReference creates an evaluator whose KS reference is
// uniform on [min, max].
func NewFitEvaluatorWithReference(min, max float64) (*FitEvaluator, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min >= max {
		return nil, fmt.Errorf("%w: uniform bounds [%g, %g]", core.ErrInvalidReference, min, max)
	}
	e := NewFitEvaluator()
	e.referenceMin = min
	e.referenceMax = max
	return e, nil
}

// Name returns the evaluator name
func (e *FitEvaluator) Name() string {
	return "benford_fit"
}

// Reference returns the bounds of the KS reference distribution.
func (e *FitEvaluator) Reference() (min, max float64) {
	return e.referenceMin, e.referenceMax
}

// Evaluate computes the fit statistics. Callers must not pass an empty
// observation set; Analyze enforces this.
func (e *FitEvaluator) Evaluate(observed benford.DigitFrequencyTable, expected benford.ExpectedFrequencyTable, digits []benford.Digit) benford.FitStatistics {
	chiSq := chiSquareStatistic(observed, expected)

	ks := ksStatistic(digits, func(x float64) float64 {
		return e.distributions.UniformCDF(x, e.referenceMin, e.referenceMax)
	})

	return benford.FitStatistics{
		ChiSquared:       chiSq,
		ChiSquaredPValue: e.distributions.ChiSquarePValue(chiSq, chiSquareDegreesOfFreedom),
		DegreesOfFreedom: chiSquareDegreesOfFreedom,
		KSStatistic:      ks,
		KSPValue:         e.distributions.KolmogorovSmirnovPValue(ks, len(digits)),
	}
}

var defaultEvaluator = NewFitEvaluator()

// EvaluateFit runs both tests with the default evaluator.
func EvaluateFit(observed benford.DigitFrequencyTable, expected benford.ExpectedFrequencyTable, digits []benford.Digit) benford.FitStatistics {
	return defaultEvaluator.Evaluate(observed, expected, digits)
}
