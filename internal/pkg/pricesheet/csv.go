package pricesheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV parses a CSV price sheet. A malformed line becomes a Row with Err
// set; only a missing header fails the whole sheet.
func ReadCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) || (err == nil && blank(header)) {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	sheet := &Sheet{Header: header}
	keys := headerKeys(header)

	for number := 2; ; number++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && perr.StartLine > 0 {
				number = perr.StartLine
			}
			sheet.Rows = append(sheet.Rows, Row{Number: number, Err: fmt.Errorf("malformed row: %w", err)})
			continue
		}
		if line, _ := reader.FieldPos(0); line > 0 {
			number = line
		}
		if blank(record) {
			continue
		}
		sheet.Rows = append(sheet.Rows, newRow(number, keys, record))
	}
	return sheet, nil
}
