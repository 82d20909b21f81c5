package contracts

import (
	"context"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// AuditStore is the append-only write path for import outcomes.
type AuditStore interface {
	RecordSkipped(ctx context.Context, rec *domain.SkippedPriceImport) error
	RecordImported(ctx context.Context, rec *domain.ImportedProduct) error
	RecordImportLog(ctx context.Context, rec *domain.ImportLog) error
}

// UploadRepository persists price upload batch records.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.PriceUpload) error
	Update(ctx context.Context, upload *domain.PriceUpload) error

	// Get returns domain.ErrUploadNotFound when id is unknown.
	Get(ctx context.Context, id string) (*domain.PriceUpload, error)
}
