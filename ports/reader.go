package ports

// ColumnSource provides numeric columns of a loaded dataset. Missing
// values are already removed from the returned slice.
type ColumnSource interface {
	NumericColumns() []string
	NumericColumn(name string) ([]float64, error)
}
