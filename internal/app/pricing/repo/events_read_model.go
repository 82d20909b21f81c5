package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/query"
)

const defaultEventLimit = 100

// EventsReadModel implements contracts.EventsReadModel for Spanner.
type EventsReadModel struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
		model:  m_outbox.NewModel(),
	}
}

// ListEvents retrieves outbox events, newest first.
func (r *EventsReadModel) ListEvents(ctx context.Context, f contracts.EventFilter) ([]*contracts.EventDTO, error) {
	b := query.From(m_outbox.TableName).Select(r.model.Columns()...)
	if f.EventType != "" {
		b = b.Where(query.Eq(m_outbox.EventType, f.EventType))
	}
	if f.AggregateID != "" {
		b = b.Where(query.Eq(m_outbox.AggregateID, f.AggregateID))
	}
	if f.Status != "" {
		b = b.Where(query.Eq(m_outbox.Status, f.Status))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}
	b = b.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(int64(limit))

	iter := r.client.Single().Query(ctx, b.Build())
	defer iter.Stop()

	var events []*contracts.EventDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var d m_outbox.Data
		if err := row.ToStruct(&d); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		dto := &contracts.EventDTO{
			EventID:     d.EventID,
			EventType:   d.EventType,
			AggregateID: d.AggregateID,
			Status:      d.Status,
			CreatedAt:   d.CreatedAt,
		}
		if d.Payload.Valid {
			dto.Payload = d.Payload.String()
		}
		if d.ProcessedAt.Valid {
			t := d.ProcessedAt.Time
			dto.ProcessedAt = &t
		}
		events = append(events, dto)
	}
	return events, nil
}
