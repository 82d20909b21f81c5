package domain

import "time"

// UploadStatus is the lifecycle of one price sheet batch.
type UploadStatus string

const (
	UploadPending    UploadStatus = "pending"
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadFailed     UploadStatus = "failed"
)

// PriceUpload is the record of one uploaded price sheet.
type PriceUpload struct {
	ID                      string
	FileName                string
	ConsiderPriceValidation bool
	Status                  UploadStatus
	Error                   string
	UploadedAt              time.Time
	ProcessedAt             *time.Time
}

// NewPriceUpload starts a batch record in the pending state.
func NewPriceUpload(id, fileName string, considerValidation bool, now time.Time) *PriceUpload {
	return &PriceUpload{
		ID:                      id,
		FileName:                fileName,
		ConsiderPriceValidation: considerValidation,
		Status:                  UploadPending,
		UploadedAt:              now,
	}
}

// MarkProcessing moves the upload into processing.
func (u *PriceUpload) MarkProcessing() {
	u.Status = UploadProcessing
}

// MarkCompleted closes the upload successfully. A batch with zero imports is
// still completed.
func (u *PriceUpload) MarkCompleted(now time.Time) {
	u.Status = UploadCompleted
	u.ProcessedAt = &now
}

// MarkFailed closes an upload whose sheet could not be read at all.
func (u *PriceUpload) MarkFailed(reason string, now time.Time) {
	u.Status = UploadFailed
	u.Error = reason
	u.ProcessedAt = &now
}

// SkippedPriceImport is an append-only record of one rejected sheet row.
type SkippedPriceImport struct {
	ID               string
	UploadID         string
	RowNumber        int
	SKU              string
	ProductName      string
	MRP              *Money
	CurrentSalePrice *Money
	Price            *Money
	Reason           string
	Suggestion       string
	CreatedAt        time.Time
}

// ImportedProduct links an upload to a product whose deal price it set.
type ImportedProduct struct {
	ID            string
	UploadID      string
	ProductID     string
	SKU           string
	MRP           *Money
	PreviousPrice *Money
	UpdatedPrice  *Money
	ImportedAt    time.Time
}

// ImportLog is the summary written once at the end of every batch.
type ImportLog struct {
	ID            string
	UploadID      string
	FileName      string
	ImportedCount int
	SkippedCount  int
	ResetCount    int
	CreatedAt     time.Time
}
