package m_price_import

// Table names
const (
	UploadsTable  = "price_uploads"
	ImportedTable = "imported_products"
	SkippedTable  = "skipped_price_imports"
	LogsTable     = "csv_import_logs"
)

// price_uploads columns
const (
	UploadID                = "upload_id"
	FileName                = "file_name"
	ConsiderPriceValidation = "consider_price_validation"
	Status                  = "status"
	ErrorMessage            = "error_message"
	UploadedAt              = "uploaded_at"
	ProcessedAt             = "processed_at"
)

// imported_products columns
const (
	ImportID      = "import_id"
	ProductID     = "product_id"
	SKU           = "sku"
	MRP           = "mrp"
	PreviousPrice = "previous_price"
	UpdatedPrice  = "updated_price"
	ImportedAt    = "imported_at"
)

// skipped_price_imports columns
const (
	SkipID           = "skip_id"
	RowNumber        = "row_number"
	ProductName      = "product_name"
	CurrentSalePrice = "current_sale_price"
	Price            = "price"
	Reason           = "reason"
	Suggestion       = "suggestion"
	CreatedAt        = "created_at"
)

// csv_import_logs columns
const (
	LogID         = "log_id"
	ImportedCount = "imported_count"
	SkippedCount  = "skipped_count"
	ResetCount    = "reset_count"
)
