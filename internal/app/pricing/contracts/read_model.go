package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// ImportReadModel serves the audit trail to queries.
type ImportReadModel interface {
	// ListSkipped returns the skipped rows of one upload in row order.
	ListSkipped(ctx context.Context, uploadID string) ([]*domain.SkippedPriceImport, error)

	// ListImported returns the products one upload changed.
	ListImported(ctx context.Context, uploadID string) ([]*domain.ImportedProduct, error)

	// ListImportLogs returns the most recent batch summaries, newest first.
	ListImportLogs(ctx context.Context, limit int) ([]*domain.ImportLog, error)
}

// EventDTO is an outbox row as exposed to readers.
type EventDTO struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	Status      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// EventFilter narrows an event listing.
type EventFilter struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int
}

// EventsReadModel lists outbox events, newest first.
type EventsReadModel interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*EventDTO, error)
}

// PriceDTO is the resolved price of one product.
type PriceDTO struct {
	ProductID     string
	SKU           string
	Name          string
	MRP           *domain.Money
	FinalPrice    *domain.Money
	Discount      *domain.Money
	Source        domain.PriceSource
	Label         string
	Tier          string
	PromotionID   string
	Promotion     string
	ShowMRPStrike bool
}
