package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_price_import"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/query"
)

// AuditRepo writes and reads the append-only import audit tables.
type AuditRepo struct {
	client *spanner.Client
	model  *m_price_import.Model
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(client *spanner.Client) *AuditRepo {
	return &AuditRepo{
		client: client,
		model:  m_price_import.NewModel(),
	}
}

var (
	_ contracts.AuditStore      = (*AuditRepo)(nil)
	_ contracts.ImportReadModel = (*AuditRepo)(nil)
)

// RecordSkipped implements contracts.AuditStore.
func (r *AuditRepo) RecordSkipped(ctx context.Context, rec *domain.SkippedPriceImport) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	mut, err := r.model.InsertSkippedMut(&m_price_import.SkippedData{
		SkipID:           rec.ID,
		UploadID:         rec.UploadID,
		RowNumber:        int64(rec.RowNumber),
		SKU:              rec.SKU,
		ProductName:      rec.ProductName,
		MRP:              toNumeric(rec.MRP),
		CurrentSalePrice: toNumeric(rec.CurrentSalePrice),
		Price:            toNumeric(rec.Price),
		Reason:           rec.Reason,
		Suggestion:       rec.Suggestion,
		CreatedAt:        rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to build skipped import mutation: %w", err)
	}
	return r.apply(ctx, mut, "skipped import")
}

// RecordImported implements contracts.AuditStore.
func (r *AuditRepo) RecordImported(ctx context.Context, rec *domain.ImportedProduct) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	mut, err := r.model.InsertImportedMut(&m_price_import.ImportedData{
		ImportID:      rec.ID,
		UploadID:      rec.UploadID,
		ProductID:     rec.ProductID,
		SKU:           rec.SKU,
		MRP:           toNumeric(rec.MRP),
		PreviousPrice: toNumeric(rec.PreviousPrice),
		UpdatedPrice:  toNumeric(rec.UpdatedPrice),
		ImportedAt:    rec.ImportedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to build imported product mutation: %w", err)
	}
	return r.apply(ctx, mut, "imported product")
}

// RecordImportLog implements contracts.AuditStore.
func (r *AuditRepo) RecordImportLog(ctx context.Context, rec *domain.ImportLog) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	mut, err := r.model.InsertLogMut(&m_price_import.LogData{
		LogID:         rec.ID,
		UploadID:      rec.UploadID,
		FileName:      rec.FileName,
		ImportedCount: int64(rec.ImportedCount),
		SkippedCount:  int64(rec.SkippedCount),
		ResetCount:    int64(rec.ResetCount),
		CreatedAt:     rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to build import log mutation: %w", err)
	}
	return r.apply(ctx, mut, "import log")
}

func (r *AuditRepo) apply(ctx context.Context, mut *spanner.Mutation, what string) error {
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mut}); err != nil {
		return fmt.Errorf("failed to record %s: %w", what, err)
	}
	return nil
}

// ListSkipped implements contracts.ImportReadModel.
func (r *AuditRepo) ListSkipped(ctx context.Context, uploadID string) ([]*domain.SkippedPriceImport, error) {
	stmt := query.From(m_price_import.SkippedTable).
		Select(r.model.SkippedColumns()...).
		Where(query.Eq(m_price_import.UploadID, uploadID)).
		OrderBy(m_price_import.RowNumber, query.Asc).
		Build()

	var out []*domain.SkippedPriceImport
	err := r.each(ctx, stmt, func(row *spanner.Row) error {
		var d m_price_import.SkippedData
		if err := row.ToStruct(&d); err != nil {
			return err
		}
		out = append(out, &domain.SkippedPriceImport{
			ID:               d.SkipID,
			UploadID:         d.UploadID,
			RowNumber:        int(d.RowNumber),
			SKU:              d.SKU,
			ProductName:      d.ProductName,
			MRP:              fromNumeric(d.MRP),
			CurrentSalePrice: fromNumeric(d.CurrentSalePrice),
			Price:            fromNumeric(d.Price),
			Reason:           d.Reason,
			Suggestion:       d.Suggestion,
			CreatedAt:        d.CreatedAt,
		})
		return nil
	})
	return out, err
}

// ListImported implements contracts.ImportReadModel.
func (r *AuditRepo) ListImported(ctx context.Context, uploadID string) ([]*domain.ImportedProduct, error) {
	stmt := query.From(m_price_import.ImportedTable).
		Select(r.model.ImportedColumns()...).
		Where(query.Eq(m_price_import.UploadID, uploadID)).
		OrderBy(m_price_import.ImportedAt, query.Asc).
		Build()

	var out []*domain.ImportedProduct
	err := r.each(ctx, stmt, func(row *spanner.Row) error {
		var d m_price_import.ImportedData
		if err := row.ToStruct(&d); err != nil {
			return err
		}
		out = append(out, &domain.ImportedProduct{
			ID:            d.ImportID,
			UploadID:      d.UploadID,
			ProductID:     d.ProductID,
			SKU:           d.SKU,
			MRP:           fromNumeric(d.MRP),
			PreviousPrice: fromNumeric(d.PreviousPrice),
			UpdatedPrice:  fromNumeric(d.UpdatedPrice),
			ImportedAt:    d.ImportedAt,
		})
		return nil
	})
	return out, err
}

// ListImportLogs implements contracts.ImportReadModel.
func (r *AuditRepo) ListImportLogs(ctx context.Context, limit int) ([]*domain.ImportLog, error) {
	b := query.From(m_price_import.LogsTable).
		Select(r.model.LogColumns()...).
		OrderBy(m_price_import.CreatedAt, query.Desc)
	if limit > 0 {
		b = b.Limit(int64(limit))
	}

	var out []*domain.ImportLog
	err := r.each(ctx, b.Build(), func(row *spanner.Row) error {
		var d m_price_import.LogData
		if err := row.ToStruct(&d); err != nil {
			return err
		}
		out = append(out, &domain.ImportLog{
			ID:            d.LogID,
			UploadID:      d.UploadID,
			FileName:      d.FileName,
			ImportedCount: int(d.ImportedCount),
			SkippedCount:  int(d.SkippedCount),
			ResetCount:    int(d.ResetCount),
			CreatedAt:     d.CreatedAt,
		})
		return nil
	})
	return out, err
}

func (r *AuditRepo) each(ctx context.Context, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to iterate audit rows: %w", err)
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("failed to parse audit row: %w", err)
		}
	}
}
