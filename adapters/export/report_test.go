package export

import (
	"strings"
	"testing"
	"time"

	"gobenford/domain/benford"
	"gobenford/domain/core"

	"github.com/stretchr/testify/assert"
)

func reportRun() *benford.Run {
	return &benford.Run{
		ID:        core.ID("0190c5a4-3d1e-7b2a-9c4f-8e2d1a6b5c30"),
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Summary:   sampleSummary(),
	}
}

func TestMarkdown(t *testing.T) {
	md := string(Markdown(reportRun(), 0.05))

	assert.True(t, strings.HasPrefix(md, "# Benford analysis: amount\n"))
	assert.Contains(t, md, "| Digit | Observed | Expected |")
	assert.Contains(t, md, "| 1 | 3 | 3.01 |")
	assert.Contains(t, md, "| 9 | 1 | 0.46 |")
	assert.Contains(t, md, "0190c5a4-3d1e-7b2a-9c4f-8e2d1a6b5c30")
}

func TestHTML(t *testing.T) {
	page := string(HTML(reportRun(), 0.05))

	assert.Contains(t, page, "<title>Benford analysis: amount</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<h1")
}

func TestHTML_EscapesColumnName(t *testing.T) {
	run := reportRun()
	run.Summary.Column = "<script>alert(1)</script>"

	md := string(Markdown(run, 0.05))
	assert.Contains(t, md, `# Benford analysis: \<script\>alert\(1\)\</script\>`)

	page := string(HTML(run, 0.05))
	assert.NotContains(t, page, "<script")
	assert.NotContains(t, page, "</script>")
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "net amount", escapeMarkdown("net amount"))
	assert.Equal(t, `a\_b\*c`, escapeMarkdown("a_b*c"))
	assert.Equal(t, "line one line two", escapeMarkdown("line one\nline two"))
}
