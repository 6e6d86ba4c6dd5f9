package export

import (
	"bytes"
	"fmt"
	"strings"

	"gobenford/domain/benford"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders a run as a Markdown report with the digit table.
func Markdown(run *benford.Run, alpha float64) []byte {
	s := run.Summary

	verdict := "deviates from Benford's Law"
	if s.Conforms(alpha) {
		verdict = "is consistent with Benford's Law"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "# Benford analysis: %s\n\n", escapeMarkdown(s.Column))
	fmt.Fprintf(&b, "Run `%s`, %s.\n\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "At alpha %.2f the column **%s**.\n\n", alpha, verdict)

	b.WriteString("| Test | Statistic | p-value |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Chi-squared (df %d) | %.2f | %.4f |\n", s.Fit.DegreesOfFreedom, s.Fit.ChiSquared, s.Fit.ChiSquaredPValue)
	fmt.Fprintf(&b, "| Kolmogorov-Smirnov | %.4f | %.4f |\n\n", s.Fit.KSStatistic, s.Fit.KSPValue)

	fmt.Fprintf(&b, "%d digits counted; %d zero and %d non-finite values skipped.\n\n",
		s.Total(), s.Profile.ZeroCount, s.Profile.NonFiniteCount)

	b.WriteString("| Digit | Observed | Expected |\n|---:|---:|---:|\n")
	for _, row := range s.Rows() {
		fmt.Fprintf(&b, "| %d | %d | %.2f |\n", row.Digit, row.Observed, row.Expected)
	}
	return b.Bytes()
}

// HTML renders the Markdown report as a standalone HTML page.
func HTML(run *benford.Run, alpha float64) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage | html.SkipHTML,
		Title: "Benford analysis: " + titleUnsafe.Replace(run.Summary.Column),
	})
	return markdown.ToHTML(Markdown(run, alpha), p, renderer)
}

// markdownSpecials are backslash-escaped in user-supplied text.
const markdownSpecials = "\\`*_{}[]()#+-.!|<>&~"

// escapeMarkdown makes column names render as literal text.
func escapeMarkdown(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
			continue
		case strings.ContainsRune(markdownSpecials, r):
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var titleUnsafe = strings.NewReplacer("<", "", ">", "", "&", "", "\"", "", "'", "")
