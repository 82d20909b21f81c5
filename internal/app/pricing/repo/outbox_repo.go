package repo

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_outbox"
)

// OutboxRepo turns recorded domain events into outbox rows written in the
// same commit as the aggregate.
type OutboxRepo struct {
	model *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{model: m_outbox.NewModel()}
}

// EventMuts serializes events into pending outbox inserts.
func (r *OutboxRepo) EventMuts(events []domain.DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", ev.EventType(), err)
		}
		muts = append(muts, r.model.InsertMut(&m_outbox.Data{
			EventID:     uuid.New().String(),
			EventType:   ev.EventType(),
			AggregateID: ev.AggregateID(),
			Payload:     spanner.NullJSON{Value: json.RawMessage(payload), Valid: true},
			Status:      m_outbox.StatusPending,
		}))
	}
	return muts, nil
}
