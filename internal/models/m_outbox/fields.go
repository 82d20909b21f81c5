package m_outbox

// Column names of outbox_events.
const (
	TableName = "outbox_events"

	EventID      = "event_id"
	EventType    = "event_type"
	AggregateID  = "aggregate_id"
	Payload      = "payload"
	Status       = "status"
	CreatedAt    = "created_at"
	ProcessedAt  = "processed_at"
	RetryCount   = "retry_count"
	ErrorMessage = "error_message"
)

// StatusIndex covers (status, created_at).
const StatusIndex = "outbox_events_by_status"

// Event statuses. Rows are written pending; the relay that moves them on
// lives outside this service.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
