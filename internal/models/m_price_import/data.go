package m_price_import

import (
	"time"

	"cloud.google.com/go/spanner"
)

// UploadData is one price_uploads row.
type UploadData struct {
	UploadID                string             `spanner:"upload_id"`
	FileName                string             `spanner:"file_name"`
	ConsiderPriceValidation bool               `spanner:"consider_price_validation"`
	Status                  string             `spanner:"status"`
	ErrorMessage            spanner.NullString `spanner:"error_message"`
	UploadedAt              time.Time          `spanner:"uploaded_at"`
	ProcessedAt             spanner.NullTime   `spanner:"processed_at"`
}

// ImportedData is one imported_products row.
type ImportedData struct {
	ImportID      string              `spanner:"import_id"`
	UploadID      string              `spanner:"upload_id"`
	ProductID     string              `spanner:"product_id"`
	SKU           string              `spanner:"sku"`
	MRP           spanner.NullNumeric `spanner:"mrp"`
	PreviousPrice spanner.NullNumeric `spanner:"previous_price"`
	UpdatedPrice  spanner.NullNumeric `spanner:"updated_price"`
	ImportedAt    time.Time           `spanner:"imported_at"`
}

// SkippedData is one skipped_price_imports row.
type SkippedData struct {
	SkipID           string              `spanner:"skip_id"`
	UploadID         string              `spanner:"upload_id"`
	RowNumber        int64               `spanner:"row_number"`
	SKU              string              `spanner:"sku"`
	ProductName      string              `spanner:"product_name"`
	MRP              spanner.NullNumeric `spanner:"mrp"`
	CurrentSalePrice spanner.NullNumeric `spanner:"current_sale_price"`
	Price            spanner.NullNumeric `spanner:"price"`
	Reason           string              `spanner:"reason"`
	Suggestion       string              `spanner:"suggestion"`
	CreatedAt        time.Time           `spanner:"created_at"`
}

// LogData is one csv_import_logs row.
type LogData struct {
	LogID         string    `spanner:"log_id"`
	UploadID      string    `spanner:"upload_id"`
	FileName      string    `spanner:"file_name"`
	ImportedCount int64     `spanner:"imported_count"`
	SkippedCount  int64     `spanner:"skipped_count"`
	ResetCount    int64     `spanner:"reset_count"`
	CreatedAt     time.Time `spanner:"created_at"`
}
