// Package tabular decodes delimited and spreadsheet uploads into a header row
// and padded data rows.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when a file extension has no reader.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoRows is returned when a file holds no non-empty row at all.
	ErrNoRows = errors.New("no rows found in file")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// Format identifies a supported serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Table is a decoded file: trimmed headers and rows padded to the header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// DetectFormat picks the reader for a file name by extension.
func DetectFormat(fileName string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fileName)))
	switch ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xls", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Read decodes payload with the reader selected by fileName's extension.
func Read(fileName string, payload []byte) (Table, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return Table{}, err
	}
	switch format {
	case FormatXLSX:
		return ReadExcel(payload)
	default:
		return ReadCSV(payload)
	}
}

// ReadCSV decodes a comma separated payload. Ragged rows are accepted.
func ReadCSV(payload []byte) (Table, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return normalizeTable(records)
}

// ReadExcel decodes the first sheet of an OOXML workbook.
func ReadExcel(payload []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return Table{}, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return normalizeTable(rows)
}

// normalizeTable treats the first non-empty row as the header.
func normalizeTable(records [][]string) (Table, error) {
	var header []string
	var rows [][]string
	for _, row := range records {
		if isEmptyRow(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		rows = append(rows, row)
	}
	if header == nil {
		return Table{}, ErrNoRows
	}

	headers := make([]string, len(header))
	for i, value := range header {
		headers[i] = strings.TrimSpace(value)
	}
	for i := range rows {
		rows[i] = padRow(rows[i], len(headers))
	}
	return Table{Headers: headers, Rows: rows}, nil
}

// Cell returns the trimmed value at row/col, or "" when col is negative.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}
