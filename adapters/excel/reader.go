package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chartlab/domain/core"
	"chartlab/domain/dataset"
	"chartlab/internal"

	"github.com/xuri/excelize/v2"
)

// FileType is the parser used for an upload
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// DetectFileType maps a filename extension to a parser
func DetectFileType(filename string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FileTypeCSV, nil
	case ".xlsx":
		return FileTypeXLSX, nil
	}
	return "", fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filepath.Ext(filename))
}

// MimeType returns the content type stored alongside a dataset
func (t FileType) MimeType() string {
	if t == FileTypeXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// DataReader handles reading Excel and CSV files into datasets
type DataReader struct {
	filePath string
	fileType FileType
	logger   *internal.Logger
}

// NewDataReader creates a reader for filePath; the extension selects the parser
func NewDataReader(filePath string) *DataReader {
	fileType, err := DetectFileType(filePath)
	if err != nil {
		fileType = ""
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// WithLogger replaces the default logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

// FileType returns the detected parser, empty for unsupported files
func (r *DataReader) FileType() FileType {
	return r.fileType
}

// ReadData reads the file at the reader's path
func (r *DataReader) ReadData() (dataset.Dataset, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if r.fileType == "" {
		return dataset.Dataset{}, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filepath.Ext(r.filePath))
	}

	file, err := os.Open(r.filePath)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open %s file: %w", strings.ToUpper(string(r.fileType)), err)
	}
	defer file.Close()

	return r.ReadFrom(file)
}

// ReadFrom parses an already opened upload stream
func (r *DataReader) ReadFrom(src io.Reader) (dataset.Dataset, error) {
	switch r.fileType {
	case FileTypeCSV:
		return r.readCSVData(src)
	case FileTypeXLSX:
		return r.readExcelData(src)
	}
	return dataset.Dataset{}, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filepath.Ext(r.filePath))
}

// readExcelData reads the first worksheet
func (r *DataReader) readExcelData(src io.Reader) (dataset.Dataset, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.Dataset{}, core.ErrNoDataRows
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	r.logger.Debug("[DataReader] Sheet %s read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads a comma separated stream. Rows may be shorter or longer
// than the header.
func (r *DataReader) readCSVData(src io.Reader) (dataset.Dataset, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows types every cell and keys it by header. Blank lines are
// skipped; cells past the last header are dropped and missing trailing cells
// stay absent.
func (r *DataReader) processRows(rows [][]string) (dataset.Dataset, error) {
	rows = dropBlankRows(rows)
	if len(rows) < 2 {
		return dataset.Dataset{}, core.ErrNoDataRows
	}

	headers := normalizeHeaders(rows[0])

	dataRows := make([]dataset.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(dataset.Row, len(headers))
		for j, cell := range raw {
			if j >= len(headers) {
				break
			}
			row[headers[j]] = TypeCell(cell)
		}
		dataRows = append(dataRows, row)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(string(r.fileType)), len(headers), len(dataRows))

	return dataset.New(headers, dataRows), nil
}

func dropBlankRows(rows [][]string) [][]string {
	kept := rows[:0:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}
