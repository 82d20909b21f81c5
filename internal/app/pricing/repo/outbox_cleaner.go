package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-pricing-service/internal/models/m_outbox"
)

// OutboxCleaner prunes finished outbox events past their retention.
type OutboxCleaner struct {
	client *spanner.Client
}

// NewOutboxCleaner creates a new OutboxCleaner.
func NewOutboxCleaner(client *spanner.Client) *OutboxCleaner {
	return &OutboxCleaner{client: client}
}

var pruneWhere = fmt.Sprintf(
	"(%[1]s = '%[2]s' AND %[4]s < @completedCutoff) OR (%[1]s = '%[3]s' AND %[4]s < @failedCutoff)",
	m_outbox.Status, m_outbox.StatusCompleted, m_outbox.StatusFailed, m_outbox.ProcessedAt,
)

func pruneParams(completedBefore, failedBefore time.Time) map[string]interface{} {
	return map[string]interface{}{
		"completedCutoff": completedBefore,
		"failedCutoff":    failedBefore,
	}
}

// Count returns, per status, how many events Prune would delete.
func (c *OutboxCleaner) Count(ctx context.Context, completedBefore, failedBefore time.Time) (map[string]int64, error) {
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT %[1]s, COUNT(*) FROM %[2]s@{FORCE_INDEX=%[3]s} WHERE %[4]s GROUP BY %[1]s",
			m_outbox.Status, m_outbox.TableName, m_outbox.StatusIndex, pruneWhere),
		Params: pruneParams(completedBefore, failedBefore),
	}

	iter := c.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	counts := make(map[string]int64)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to count outbox events: %w", err)
		}

		var status string
		var n int64
		if err := row.Columns(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to parse outbox count: %w", err)
		}
		counts[status] = n
	}
	return counts, nil
}

// Prune deletes completed events processed before completedBefore and failed
// events processed before failedBefore. It returns the number deleted.
func (c *OutboxCleaner) Prune(ctx context.Context, completedBefore, failedBefore time.Time) (int64, error) {
	stmt := spanner.Statement{
		SQL:    fmt.Sprintf("DELETE FROM %s WHERE %s", m_outbox.TableName, pruneWhere),
		Params: pruneParams(completedBefore, failedBefore),
	}

	var deleted int64
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune outbox events: %w", err)
	}
	return deleted, nil
}
