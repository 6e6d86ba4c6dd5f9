package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoicesCSV = `vendor,amount,tax
acme,123,12.3
globex,0.042,
initech,1.5,0.15
umbrella,-2300,230
acme,45,4.5
globex,9.9,0.99
initech,110,11
umbrella,0,0
acme,17,1.7
globex,3,0.3
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoices.csv")
	require.NoError(t, os.WriteFile(path, []byte(invoicesCSV), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "history.db"))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := execute(t, "analyze", path, "--column", "amount")
	require.NoError(t, err)

	assert.Contains(t, out, "Column: amount")
	assert.Contains(t, out, "Digits analyzed: 9 (zeros skipped: 1")
	assert.Contains(t, out, "KS statistic: 0.3750")
	assert.Contains(t, out, "Digit")
	assert.Contains(t, out, "2.71")
}

func TestAnalyzeCommand_Markdown(t *testing.T) {
	path := writeDataset(t)

	out, err := execute(t, "analyze", path, "--column", "amount", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Benford analysis: amount")
	assert.Contains(t, out, "| 1 | 4 | 2.71 |")

	_, err = execute(t, "analyze", path, "--column", "amount", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestAnalyzeCommand_AllColumnsWithExport(t *testing.T) {
	path := writeDataset(t)
	exportPath := filepath.Join(t.TempDir(), "digits.csv")

	out, err := execute(t, "analyze", path, "--all", "--export", exportPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Column: amount")
	assert.Contains(t, out, "Column: tax")
	assert.NotContains(t, out, "Column: vendor")

	for _, column := range []string{"amount", "tax"} {
		data, err := os.ReadFile(filepath.Join(filepath.Dir(exportPath), "digits_"+column+".csv"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "Digit,Observed Counts,Expected Counts"))
	}
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	path := writeDataset(t)

	_, err := execute(t, "analyze", path)
	assert.ErrorContains(t, err, "--column")

	_, err = execute(t, "analyze", path, "--column", "vendor")
	assert.ErrorContains(t, err, "not numeric")

	_, err = execute(t, "analyze", path, "--column", "amount", "--min", "1000000")
	assert.ErrorContains(t, err, "no data")
}

func TestColumnsCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := execute(t, "columns", path, "--preview", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "10 rows")
	assert.Regexp(t, `vendor\s+false`, out)
	assert.Regexp(t, `amount\s+true`, out)
	assert.Contains(t, out, "acme")
}

func TestHistoryCommand(t *testing.T) {
	path := writeDataset(t)
	t.Setenv("LOG_LEVEL", "ERROR")
	dbPath := filepath.Join(t.TempDir(), "history.db")

	run := func(args ...string) string {
		t.Setenv("DATABASE_URL", dbPath)
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		return out.String()
	}

	assert.Contains(t, run("history"), "No runs stored.")

	run("analyze", path, "--column", "amount", "--save")
	out := run("history")
	assert.Contains(t, out, "amount")
	assert.Contains(t, out, "CONFORMS")
}
