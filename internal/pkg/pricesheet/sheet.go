// Package pricesheet reads uploaded price sheets (CSV or XLSX) into rows
// keyed by column name, and writes blank templates.
package pricesheet

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Column headers of a price sheet.
const (
	ColSKU         = "SKU"
	ColProductName = "Product Name"
	ColCategory    = "Category"
	ColSubcategory = "Sub-category"
	ColMRP         = "MRP"
	ColNetPrice    = "Net Price"
)

// Columns is the template column order.
var Columns = []string{ColSKU, ColProductName, ColCategory, ColSubcategory, ColMRP, ColNetPrice}

// Format is a supported sheet encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	// ErrEmptySheet means the file has no header row.
	ErrEmptySheet = errors.New("price sheet is empty or has no header row")
	// ErrUnsupportedFormat means the file is neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported price sheet format, expected .csv or .xlsx")
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks the format from a file name's extension.
func DetectFormat(name string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return ParseFormat(ext)
}

// Row is one data row. Number is the 1-based sheet row (the header is row 1).
// Err is set when the row itself could not be parsed; cells are then empty.
type Row struct {
	Number int
	Err    error
	cells  map[string]string
}

// Get returns the trimmed value of col and whether it is present and non-empty.
func (r Row) Get(col string) (string, bool) {
	v, ok := r.cells[normalizeHeader(col)]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Value returns the trimmed value of col, or "".
func (r Row) Value(col string) string {
	v, _ := r.Get(col)
	return v
}

// Sheet is a parsed price sheet.
type Sheet struct {
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header names col, ignoring case and spacing.
func (s *Sheet) HasColumn(col string) bool {
	key := normalizeHeader(col)
	for _, h := range s.Header {
		if normalizeHeader(h) == key {
			return true
		}
	}
	return false
}

// Read parses content according to the extension of name.
func Read(name string, content []byte) (*Sheet, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	switch format {
	case FormatXLSX:
		return ReadXLSX(bytes.NewReader(content))
	default:
		return ReadCSV(bytes.NewReader(content))
	}
}

// normalizeHeader lowercases, trims and drops a trailing required marker.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, string(utf8BOM))
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimSpace(strings.TrimSuffix(h, "*"))
	return strings.Join(strings.Fields(h), " ")
}

// newRow maps record values onto the normalized header. Extra values are
// dropped; missing ones are simply absent.
func newRow(number int, keys []string, record []string) Row {
	cells := make(map[string]string, len(keys))
	for i, key := range keys {
		if key == "" || i >= len(record) {
			continue
		}
		if _, dup := cells[key]; dup {
			continue
		}
		cells[key] = strings.TrimSpace(record[i])
	}
	return Row{Number: number, cells: cells}
}

func headerKeys(header []string) []string {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = normalizeHeader(h)
	}
	return keys
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
