// Package firstdigit implements the Benford's Law first-digit test:
// digit extraction, the expected distribution and the goodness-of-fit
// evaluation. Everything here is pure and safe for concurrent use.
package firstdigit

import (
	"fmt"

	"gobenford/domain/benford"
	"gobenford/domain/core"
	"gobenford/internal/profiling"
)

// Analyzer runs the complete first-digit pipeline on one sample.
type Analyzer struct {
	evaluator *FitEvaluator
	profiler  *profiling.DistributionAnalyzer
}

// NewAnalyzer creates an analyzer. A nil evaluator selects the default.
func NewAnalyzer(evaluator *FitEvaluator) *Analyzer {
	if evaluator == nil {
		evaluator = NewFitEvaluator()
	}
	return &Analyzer{
		evaluator: evaluator,
		profiler:  profiling.NewDistributionAnalyzer(),
	}
}

// Evaluator returns the fit evaluator in use.
func (a *Analyzer) Evaluator() *FitEvaluator {
	return a.evaluator
}

// Analyze extracts leading digits from samples and tests them against
// Benford's Law. Samples must already be null-free and range-filtered.
// It returns ErrNoData when no sample has a leading digit.
func (a *Analyzer) Analyze(samples []float64, column string) (*benford.ResultSummary, error) {
	observed, digits, err := ExtractLeadingDigits(samples)
	if err != nil {
		return nil, core.NewNoDataError(column)
	}

	expected := ExpectedCounts(observed.Total())
	fit := a.evaluator.Evaluate(observed, expected, digits)

	profile, err := a.profiler.Profile(samples)
	if err != nil {
		return nil, fmt.Errorf("profile column %s: %w", column, err)
	}

	return &benford.ResultSummary{
		Column:   column,
		Observed: observed,
		Expected: expected,
		Fit:      fit,
		Profile:  profile,
	}, nil
}

var defaultAnalyzer = NewAnalyzer(nil)

// Analyze runs the pipeline with the default analyzer.
func Analyze(samples []float64, column string) (*benford.ResultSummary, error) {
	return defaultAnalyzer.Analyze(samples, column)
}
