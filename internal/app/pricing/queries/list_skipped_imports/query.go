package list_skipped_imports

import (
	"context"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// Request selects the upload whose skipped rows are listed.
type Request struct {
	UploadID string
}

// Response is an upload together with its skipped rows in row order.
type Response struct {
	Upload  *domain.PriceUpload
	Skipped []*domain.SkippedPriceImport
}

// Query handles the list skipped imports query use case.
type Query struct {
	uploads   contracts.UploadRepository
	readModel contracts.ImportReadModel
}

// NewQuery creates a new list skipped imports query.
func NewQuery(uploads contracts.UploadRepository, readModel contracts.ImportReadModel) *Query {
	return &Query{
		uploads:   uploads,
		readModel: readModel,
	}
}

// Execute returns domain.ErrUploadNotFound for an unknown upload.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	upload, err := q.uploads.Get(ctx, req.UploadID)
	if err != nil {
		return nil, err
	}

	skipped, err := q.readModel.ListSkipped(ctx, req.UploadID)
	if err != nil {
		return nil, err
	}
	return &Response{Upload: upload, Skipped: skipped}, nil
}
