package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gobenford/domain/core"
	"gobenford/internal/logging"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// Supported file types
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
	FileTypeJSON = "json"

	// FileTypeXLS is legacy BIFF Excel, which excelize cannot read.
	FileTypeXLS = "xls"
)

// DataReader handles reading CSV, Excel and JSON files
type DataReader struct {
	filePath string
	fileType string
	dataPath string // gjson path to the record array in JSON files
	logger   *logging.Logger
}

// NewDataReader creates a new data reader. The file type comes from the
// extension; anything other than .xlsx, .xlsm or .json is read as CSV.
func NewDataReader(filePath string) *DataReader {
	fileType := FileTypeCSV
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		fileType = FileTypeXLSX
	case ".json":
		fileType = FileTypeJSON
	case ".xls":
		fileType = FileTypeXLS
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: logging.Nop()}
}

// WithDataPath sets the gjson path of the record array in a JSON file,
// e.g. "data.items". The default is the document root.
func (r *DataReader) WithDataPath(path string) *DataReader {
	r.dataPath = path
	return r
}

// WithLogger attaches a logger.
func (r *DataReader) WithLogger(logger *logging.Logger) *DataReader {
	if logger != nil {
		r.logger = logger.With("data_reader")
	}
	return r
}

// FileType returns the detected file type.
func (r *DataReader) FileType() string {
	return r.fileType
}

// ReadData reads the file into a Dataset
func (r *DataReader) ReadData() (*Dataset, error) {
	if r.fileType == FileTypeXLS {
		return nil, fmt.Errorf("%w: legacy .xls workbooks are not supported, save %s as .xlsx or .csv", core.ErrUnsupportedFormat, filepath.Base(r.filePath))
	}
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, fmt.Errorf("%s file not found: %s: %w", strings.ToUpper(r.fileType), r.filePath, err)
	}

	start := time.Now()
	var (
		data *Dataset
		err  error
	)
	switch r.fileType {
	case FileTypeCSV:
		data, err = r.readCSVData()
	case FileTypeXLSX:
		data, err = r.readExcelData()
	case FileTypeJSON:
		data, err = r.readJSONData()
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, filepath.Ext(r.filePath))
	}
	if err != nil {
		return nil, err
	}

	data.Source = r.filePath
	r.logger.Info("file read",
		logging.String("file", r.filePath),
		logging.String("type", r.fileType),
		logging.Int("columns", len(data.Headers)),
		logging.Int("rows", len(data.Rows)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}

// readExcelData reads the first worksheet with raw (unformatted) cell values
func (r *DataReader) readExcelData() (*Dataset, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no worksheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("Excel file must have a header row")
	}

	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("CSV file must have a header row")
	}

	return r.processRows(rows)
}

// readJSONData reads an array of flat objects. Headers follow the order
// in which keys first appear.
func (r *DataReader) readJSONData() (*Dataset, error) {
	body, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON in %s", r.filePath)
	}

	records := gjson.ParseBytes(body)
	if r.dataPath != "" {
		records = gjson.GetBytes(body, r.dataPath)
		if !records.Exists() {
			return nil, fmt.Errorf("data path '%s' not found in %s", r.dataPath, r.filePath)
		}
	}
	if !records.IsArray() {
		return nil, fmt.Errorf("JSON data must be an array of objects")
	}

	data := &Dataset{}
	seen := make(map[string]bool)
	var rowErr error
	records.ForEach(func(_, record gjson.Result) bool {
		if !record.IsObject() {
			rowErr = fmt.Errorf("JSON record %d is not an object", len(data.Rows)+1)
			return false
		}
		row := make(RawRowData)
		record.ForEach(func(key, value gjson.Result) bool {
			name := strings.TrimSpace(key.String())
			if !seen[name] {
				seen[name] = true
				data.Headers = append(data.Headers, name)
			}
			row[name] = jsonCell(value)
			return true
		})
		data.Rows = append(data.Rows, row)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return data, nil
}

func jsonCell(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return strings.TrimSpace(value.Str)
	default:
		return value.Raw
	}
}

// processRows converts raw string rows into Dataset format
func (r *DataReader) processRows(rows [][]string) (*Dataset, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRowData, len(headers))

		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}

		dataRows = append(dataRows, rowData)
	}

	return &Dataset{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}
