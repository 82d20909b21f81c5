package list_import_logs

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/tests/testutil"
)

func TestListImportLogs(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore(nil)
	for i := 0; i < 25; i++ {
		require.NoError(t, store.RecordImportLog(ctx, &domain.ImportLog{ID: fmt.Sprint(i), ImportedCount: i}))
	}
	q := NewQuery(store)

	logs, err := q.Execute(ctx, &Request{})
	require.NoError(t, err)
	require.Len(t, logs, defaultLimit)
	assert.Equal(t, "24", logs[0].ID, "newest first")

	logs, err = q.Execute(ctx, &Request{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	logs, err = q.Execute(ctx, &Request{Limit: 10_000})
	require.NoError(t, err)
	assert.Len(t, logs, 25)
}
