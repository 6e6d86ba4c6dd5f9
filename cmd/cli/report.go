package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gobenford/domain/benford"
)

// writeReport prints the summary of one run as a plain-text report.
func writeReport(w io.Writer, run *benford.Run, alpha float64) error {
	s := run.Summary

	verdict := "deviates from Benford's Law"
	if s.Conforms(alpha) {
		verdict = "consistent with Benford's Law"
	}

	fmt.Fprintf(w, "Column: %s\n", s.Column)
	fmt.Fprintf(w, "Run: %s\n", run.ID)
	fmt.Fprintf(w, "Digits analyzed: %d (zeros skipped: %d, non-finite skipped: %d)\n",
		s.Total(), s.Profile.ZeroCount, s.Profile.NonFiniteCount)
	if run.Filter.Min != nil || run.Filter.Max != nil {
		fmt.Fprintf(w, "Range: %s\n", formatRange(run.Filter))
	}
	fmt.Fprintf(w, "Chi-squared statistic: %.2f, p-value: %.4f\n", s.Fit.ChiSquared, s.Fit.ChiSquaredPValue)
	fmt.Fprintf(w, "KS statistic: %.4f, p-value: %.4f\n", s.Fit.KSStatistic, s.Fit.KSPValue)
	fmt.Fprintf(w, "Verdict (alpha %.2f): %s\n\n", alpha, verdict)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Digit\tObserved\tExpected\t")
	for _, row := range s.Rows() {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t\n", row.Digit, row.Observed, row.Expected)
	}
	return tw.Flush()
}

func formatRange(f benford.RangeFilter) string {
	lo, hi := "-inf", "+inf"
	if f.Min != nil {
		lo = fmt.Sprintf("%g", *f.Min)
	}
	if f.Max != nil {
		hi = fmt.Sprintf("%g", *f.Max)
	}
	return fmt.Sprintf("[%s, %s]", lo, hi)
}
