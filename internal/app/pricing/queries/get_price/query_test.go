package get_price

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/catalog-pricing-service/tests/testutil"
)

func TestGetPrice(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()
	store := testutil.NewMemStore(clk.Now)
	q := NewQuery(store, services.NewPriceEngine(services.NewPromotionResolver(store, store, clk), clk))

	cat := store.AddCategory("Books", "")
	p := testutil.SeedProduct(store, testutil.ProductSpec{SKU: "BK-1", Name: "Atlas", CategoryID: cat.ID, MRP: "400"})
	promo := testutil.ActivePromotion(domain.ScopeCategory, cat.ID, domain.DiscountPercentage, "12.5", clk.Now())
	store.AddPromotion(promo)

	t.Run("category promotion", func(t *testing.T) {
		dto, err := q.Execute(ctx, &Request{SKU: " BK-1 "})
		require.NoError(t, err)

		assert.Equal(t, p.ID(), dto.ProductID)
		assert.Equal(t, "Atlas", dto.Name)
		assert.Equal(t, "400.00", dto.MRP.String())
		assert.Equal(t, "350.00", dto.FinalPrice.String())
		assert.Equal(t, "50.00", dto.Discount.String())
		assert.Equal(t, domain.SourceCategoryPromotion, dto.Source)
		assert.Equal(t, "Category Promotion", dto.Label)
		assert.Equal(t, "category", dto.Tier)
		assert.Equal(t, promo.ID, dto.PromotionID)
		assert.Equal(t, "12.5% off", dto.Promotion)
		assert.True(t, dto.ShowMRPStrike)
	})

	t.Run("unknown SKU", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{SKU: "missing"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("empty SKU", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{SKU: "  "})
		assert.ErrorIs(t, err, domain.ErrEmptySKU)
	})
}
