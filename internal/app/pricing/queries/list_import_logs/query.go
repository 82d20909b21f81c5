package list_import_logs

import (
	"context"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Request contains the number of summaries to return.
type Request struct {
	Limit int
}

// Query handles the list import logs query use case.
type Query struct {
	readModel contracts.ImportReadModel
}

// NewQuery creates a new list import logs query.
func NewQuery(readModel contracts.ImportReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute returns the most recent batch summaries, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.ImportLog, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return q.readModel.ListImportLogs(ctx, limit)
}
