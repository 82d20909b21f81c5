package m_outbox

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a pending event stamped with the
// commit time.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{EventID, EventType, AggregateID, Payload, Status, CreatedAt, RetryCount},
		[]interface{}{data.EventID, data.EventType, data.AggregateID, data.Payload, data.Status, spanner.CommitTimestamp, data.RetryCount},
	)
}

// Columns lists outbox columns in read order.
func (m *Model) Columns() []string {
	return []string{EventID, EventType, AggregateID, Payload, Status, CreatedAt, ProcessedAt, RetryCount, ErrorMessage}
}
