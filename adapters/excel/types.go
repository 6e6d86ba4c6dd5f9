package excel

import (
	"fmt"
	"strconv"
	"strings"

	"gobenford/domain/core"
)

// RawRowData represents a row of raw tabular data as string key-value pairs
type RawRowData map[string]string

// Dataset represents a complete tabular dataset
type Dataset struct {
	Source  string       // File the data was read from
	Headers []string     // Column headers in file order
	Rows    []RawRowData // Data rows
}

// nullTokens are cell values treated as missing.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"-":    true,
}

// parseCell returns the numeric value of a cell. ok is false for a
// missing value; err is set when the cell is present but not a number.
func parseCell(cell string) (value float64, ok bool, err error) {
	trimmed := strings.TrimSpace(cell)
	if nullTokens[strings.ToLower(trimmed)] {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// HasColumn reports whether the dataset has a column with this header.
func (d *Dataset) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// NumericColumns lists, in header order, the columns whose non-missing
// cells all parse as numbers. Columns with no values at all are excluded.
func (d *Dataset) NumericColumns() []string {
	var numeric []string
	for _, header := range d.Headers {
		if d.isNumeric(header) {
			numeric = append(numeric, header)
		}
	}
	return numeric
}

func (d *Dataset) isNumeric(column string) bool {
	seen := false
	for _, row := range d.Rows {
		_, ok, err := parseCell(row[column])
		if err != nil {
			return false
		}
		seen = seen || ok
	}
	return seen
}

// NumericColumn returns the non-missing values of a column in row order.
// It fails with ErrColumnNotFound for an unknown header and with
// ErrInvalidColumn when any present cell is not numeric.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	if !d.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
	}

	values := make([]float64, 0, len(d.Rows))
	for i, row := range d.Rows {
		v, ok, err := parseCell(row[name])
		if err != nil {
			return nil, core.NewInvalidColumnError(name, row[name], i+2)
		}
		if ok {
			values = append(values, v)
		}
	}
	return values, nil
}

// Preview returns up to n rows as cells aligned with Headers.
func (d *Dataset) Preview(n int) [][]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	preview := make([][]string, 0, n)
	for _, row := range d.Rows[:n] {
		cells := make([]string, len(d.Headers))
		for j, h := range d.Headers {
			cells[j] = row[h]
		}
		preview = append(preview, cells)
	}
	return preview
}
