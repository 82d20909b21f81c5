package pricesheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds prices in generated templates. When
// reading, it is preferred over the first sheet if present.
const SheetName = "Prices"

// ReadXLSX parses the price worksheet of an Excel workbook.
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	name := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, SheetName) {
			name = s
			break
		}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) == 0 || blank(rows[0]) {
		return nil, ErrEmptySheet
	}

	sheet := &Sheet{Header: rows[0]}
	keys := headerKeys(rows[0])
	for i, record := range rows[1:] {
		if blank(record) {
			continue
		}
		sheet.Rows = append(sheet.Rows, newRow(i+2, keys, record))
	}
	return sheet, nil
}
