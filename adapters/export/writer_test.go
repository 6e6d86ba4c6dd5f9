package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gobenford/domain/benford"
	"gobenford/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSummary() *benford.ResultSummary {
	return &benford.ResultSummary{
		Column:   "amount",
		Observed: benford.DigitFrequencyTable{3, 2, 1, 0, 1, 0, 1, 1, 1},
		Expected: benford.ExpectedFrequencyTable{3.0103, 1.7609, 1.2494, 0.9691, 0.7918, 0.6695, 0.5799, 0.5115, 0.4576},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSummary()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "Digit,Observed Counts,Expected Counts", lines[0])
	assert.Equal(t, "1,3,3.0103", lines[1])
	assert.Equal(t, "4,0,0.9691", lines[4])
	assert.Equal(t, "9,1,0.4576", lines[9])
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteFile(path, sampleSummary()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Digit,Observed Counts,Expected Counts\n1,3,"))
}

func TestWriteFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteFile(path, sampleSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, Header, rows[0])
	for i, row := range rows[1:] {
		assert.Equal(t, string(rune('1'+i)), row[0], "digit order")
	}
	assert.Equal(t, "3", rows[1][1])
}

func TestWriteFile_Unsupported(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "results.txt"), sampleSummary())
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}
