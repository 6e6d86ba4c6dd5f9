// Package export writes a ResultSummary as an aligned digit table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gobenford/domain/benford"
	"gobenford/domain/core"

	"github.com/xuri/excelize/v2"
)

// Header is the column header row shared by every export format.
var Header = []string{"Digit", "Observed Counts", "Expected Counts"}

// WriteCSV writes one row per digit, 1..9, after the header.
func WriteCSV(w io.Writer, summary *benford.ResultSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range summary.Rows() {
		record := []string{
			strconv.Itoa(int(row.Digit)),
			strconv.Itoa(row.Observed),
			strconv.FormatFloat(row.Expected, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table to the first sheet of a new workbook.
func WriteXLSX(path string, summary *benford.ResultSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range summary.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{int(row.Digit), row.Observed, row.Expected}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// WriteFile picks the format from the extension of path.
func WriteFile(path string, summary *benford.ResultSummary) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := WriteCSV(file, summary); err != nil {
			file.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		return file.Close()
	case ".xlsx":
		if err := WriteXLSX(path, summary); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, filepath.Ext(path))
	}
}
