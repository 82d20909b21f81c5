package m_price_import

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe operations on the price import tables.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertUploadMut writes the full state of an upload record.
func (m *Model) UpsertUploadMut(data *UploadData) (*spanner.Mutation, error) {
	return spanner.InsertOrUpdateStruct(UploadsTable, data)
}

// InsertImportedMut appends an imported product record.
func (m *Model) InsertImportedMut(data *ImportedData) (*spanner.Mutation, error) {
	return spanner.InsertStruct(ImportedTable, data)
}

// InsertSkippedMut appends a skipped row record.
func (m *Model) InsertSkippedMut(data *SkippedData) (*spanner.Mutation, error) {
	return spanner.InsertStruct(SkippedTable, data)
}

// InsertLogMut appends a batch summary.
func (m *Model) InsertLogMut(data *LogData) (*spanner.Mutation, error) {
	return spanner.InsertStruct(LogsTable, data)
}

// UploadColumns lists price_uploads columns in read order.
func (m *Model) UploadColumns() []string {
	return []string{UploadID, FileName, ConsiderPriceValidation, Status, ErrorMessage, UploadedAt, ProcessedAt}
}

// SkippedColumns lists skipped_price_imports columns in read order.
func (m *Model) SkippedColumns() []string {
	return []string{SkipID, UploadID, RowNumber, SKU, ProductName, MRP, CurrentSalePrice, Price, Reason, Suggestion, CreatedAt}
}

// ImportedColumns lists imported_products columns in read order.
func (m *Model) ImportedColumns() []string {
	return []string{ImportID, UploadID, ProductID, SKU, MRP, PreviousPrice, UpdatedPrice, ImportedAt}
}

// LogColumns lists csv_import_logs columns in read order.
func (m *Model) LogColumns() []string {
	return []string{LogID, UploadID, FileName, ImportedCount, SkippedCount, ResetCount, CreatedAt}
}
