// Package testkit generates synthetic ledgers with known leading-digit
// behaviour for tests and demos.
package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"gobenford/domain/core"
)

// Distribution selects how a column's values are drawn.
type Distribution int

const (
	// LogUniform spans whole decades and follows Benford's Law exactly.
	LogUniform Distribution = iota
	// Uniform draws evenly within [Min, Max] and does not conform.
	Uniform
	// Fabricated mimics invented figures that favour middle digits.
	Fabricated
)

func (d Distribution) String() string {
	switch d {
	case LogUniform:
		return "log_uniform"
	case Uniform:
		return "uniform"
	case Fabricated:
		return "fabricated"
	default:
		return fmt.Sprintf("distribution(%d)", int(d))
	}
}

// ColumnSpec describes one generated column
type ColumnSpec struct {
	Name         string       `json:"name"`
	Distribution Distribution `json:"distribution"`
	Min          float64      `json:"min"`
	Max          float64      `json:"max"`
	NullRate     float64      `json:"null_rate"`
	ZeroRate     float64      `json:"zero_rate"`
	NegativeRate float64      `json:"negative_rate"`
}

// LedgerGeneratorConfig configures the ledger generator
type LedgerGeneratorConfig struct {
	Rows    int          `json:"rows"`
	Seed    int64        `json:"seed"`
	Columns []ColumnSpec `json:"columns"`
}

// DefaultLedgerConfig returns a mix of conforming and non-conforming columns
func DefaultLedgerConfig() LedgerGeneratorConfig {
	return LedgerGeneratorConfig{
		Rows: 5000,
		Seed: 42,
		Columns: []ColumnSpec{
			{Name: "invoice_amount", Distribution: LogUniform, Min: 1, Max: 1e6, NullRate: 0.02, ZeroRate: 0.01},
			{Name: "adjustment", Distribution: LogUniform, Min: 1, Max: 1e4, NegativeRate: 0.5},
			{Name: "unit_price", Distribution: Uniform, Min: 100, Max: 999},
			{Name: "expense_claim", Distribution: Fabricated, Min: 100, Max: 10000},
		},
	}
}

// Ledger is a generated table. Missing values are NaN.
type Ledger struct {
	Headers []string
	Columns map[string][]float64
}

// LedgerGenerator produces deterministic ledgers from a seed
type LedgerGenerator struct {
	config LedgerGeneratorConfig
	rng    *rand.Rand
}

// NewLedgerGenerator creates a new ledger generator
func NewLedgerGenerator(config LedgerGeneratorConfig) *LedgerGenerator {
	return &LedgerGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate draws every column row by row
func (g *LedgerGenerator) Generate() *Ledger {
	ledger := &Ledger{Columns: make(map[string][]float64, len(g.config.Columns))}
	for _, col := range g.config.Columns {
		ledger.Headers = append(ledger.Headers, col.Name)
		ledger.Columns[col.Name] = make([]float64, 0, g.config.Rows)
	}

	for i := 0; i < g.config.Rows; i++ {
		for _, col := range g.config.Columns {
			ledger.Columns[col.Name] = append(ledger.Columns[col.Name], g.value(col))
		}
	}
	return ledger
}

func (g *LedgerGenerator) value(col ColumnSpec) float64 {
	switch {
	case g.rng.Float64() < col.NullRate:
		return math.NaN()
	case g.rng.Float64() < col.ZeroRate:
		return 0
	}

	var v float64
	switch col.Distribution {
	case LogUniform:
		lo, hi := math.Log10(col.Min), math.Log10(col.Max)
		v = math.Pow(10, lo+g.rng.Float64()*(hi-lo))
	case Uniform:
		v = col.Min + g.rng.Float64()*(col.Max-col.Min)
	case Fabricated:
		// Leading digit 4-7, magnitude drawn from the configured range.
		digit := 4 + g.rng.Intn(4)
		decades := math.Floor(math.Log10(col.Min)) + float64(g.rng.Intn(int(math.Max(1, math.Log10(col.Max/col.Min)))))
		v = (float64(digit) + g.rng.Float64()) * math.Pow(10, decades)
	}

	v = math.Round(v*100) / 100
	if g.rng.Float64() < col.NegativeRate {
		v = -v
	}
	return v
}

// NumericColumns lists the generated columns in order.
func (l *Ledger) NumericColumns() []string {
	return l.Headers
}

// NumericColumn returns the non-missing values of a column.
func (l *Ledger) NumericColumn(name string) ([]float64, error) {
	values, ok := l.Columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// WriteCSV writes the ledger with a header row. Missing values are empty cells.
func (l *Ledger) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(l.Headers); err != nil {
		return err
	}

	rows := 0
	if len(l.Headers) > 0 {
		rows = len(l.Columns[l.Headers[0]])
	}
	record := make([]string, len(l.Headers))
	for i := 0; i < rows; i++ {
		for j, h := range l.Headers {
			v := l.Columns[h][i]
			if math.IsNaN(v) {
				record[j] = ""
				continue
			}
			record[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
