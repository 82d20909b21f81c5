package pricesheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type columnHelp struct {
	name        string
	description string
	required    string
	example     string
}

var columnHelps = []columnHelp{
	{ColSKU, "Catalog SKU of the product", "Yes", "PHN-1001"},
	{ColProductName, "Product display name", "Yes", "OnePlus 12"},
	{ColCategory, "Top-level category, created if missing", "Yes", "Mobiles"},
	{ColSubcategory, "Category under the top-level one, created if missing", "Yes", "OnePlus"},
	{ColMRP, "Maximum retail price", "With price validation", "64999.00"},
	{ColNetPrice, "New deal price", "With price validation", "59999.00"},
}

// WriteTemplate writes a blank price sheet in format to w.
func WriteTemplate(w io.Writer, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSVTemplate(w)
	case FormatXLSX:
		return writeXLSXTemplate(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCSVTemplate(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, col := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return err
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, colName, colName, 18)
	}

	const help = "Instructions"
	if _, err := f.NewSheet(help); err != nil {
		return err
	}
	_ = f.SetCellValue(help, "A1", "Price Import Instructions")
	_ = f.SetCellValue(help, "A2", "Header names are matched case-insensitively. Currency symbols and thousands separators in prices are ignored.")
	_ = f.SetCellValue(help, "A3", "A row whose Net Price equals the current price is skipped as unchanged.")
	_ = f.SetSheetRow(help, "A5", &[]interface{}{"Column", "Description", "Required", "Example"})
	for i, c := range columnHelps {
		cell := fmt.Sprintf("A%d", i+6)
		_ = f.SetSheetRow(help, cell, &[]interface{}{c.name, c.description, c.required, c.example})
	}

	_, err = f.WriteTo(w)
	return err
}
