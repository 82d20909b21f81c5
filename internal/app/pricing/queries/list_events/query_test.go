package list_events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/tests/testutil"
)

func TestListEvents(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()
	store := testutil.NewMemStore(clk.Now)
	cat := store.AddCategory("Toys", "")

	p, err := domain.NewProduct("prod-1", "T-1", "Kite", cat.ID, "", domain.MustParseMoney("50"), clk.Now())
	require.NoError(t, err)
	require.NoError(t, store.SaveProduct(ctx, p))
	_, err = p.ApplyImportedPrice(domain.ImportedPrice{CategoryID: cat.ID, NetPrice: domain.MustParseMoney("45")}, clk.Now())
	require.NoError(t, err)
	require.NoError(t, store.SaveProduct(ctx, p))

	q := NewQuery(store)

	all, err := q.Execute(ctx, &Request{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "product.deal_price_set", all[0].EventType)

	created, err := q.Execute(ctx, &Request{EventType: "product.created"})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "prod-1", created[0].AggregateID)

	limited, err := q.Execute(ctx, &Request{AggregateID: "prod-1", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := q.Execute(ctx, &Request{AggregateID: "other"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
