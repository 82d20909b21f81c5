//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/catalog-pricing-service/tests/testutil"
)

func TestPromotionRepository_FindProductPromotions(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	promotions := repo.NewPromotionRepo(client)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	categoryID := testutil.CreateTestCategory(t, client, "Electronics", "")
	productID := testutil.CreateTestProduct(t, client, testutil.ProductSpec{SKU: "SKU-1", CategoryID: categoryID, MRP: "200"})

	small := testutil.ActivePromotion(domain.ScopeProduct, productID, domain.DiscountPercentage, "10", now)
	big := testutil.ActivePromotion(domain.ScopeProduct, productID, domain.DiscountPercentage, "25", now)
	endsNow := testutil.NewPromotion(domain.ScopeProduct, productID, domain.DiscountFlat, "5", now.Add(-time.Hour), now)
	expired := testutil.NewPromotion(domain.ScopeProduct, productID, domain.DiscountPercentage, "50", now.Add(-48*time.Hour), now.Add(-time.Second))
	inactive := testutil.ActivePromotion(domain.ScopeProduct, productID, domain.DiscountPercentage, "60", now)
	inactive.IsActive = false

	for _, p := range []*domain.Promotion{small, big, endsNow, expired, inactive} {
		testutil.CreateTestPromotion(t, client, p)
	}

	found, err := promotions.FindProductPromotions(ctx, productID, now)
	require.NoError(t, err)
	require.Len(t, found, 3, "window is inclusive and inactive or expired rows are excluded")
	assert.Equal(t, big.ID, found[0].ID)
	assert.Equal(t, domain.ScopeProduct, found[0].Scope)
	assert.Equal(t, productID, found[0].TargetID)
	assert.Equal(t, domain.DiscountPercentage, found[0].Rule.Kind())
	assert.Equal(t, "25", found[0].Rule.Value().String())

	ids := []string{found[0].ID, found[1].ID, found[2].ID}
	assert.ElementsMatch(t, []string{big.ID, small.ID, endsNow.ID}, ids)
}

func TestPromotionRepository_CategoryLookups(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	promotions := repo.NewPromotionRepo(client)
	now := time.Now().UTC().Truncate(time.Second)

	electronics := testutil.CreateTestCategory(t, client, "Electronics", "")
	mobiles := testutil.CreateTestCategory(t, client, "Mobiles", electronics)
	laptops := testutil.CreateTestCategory(t, client, "Laptops", electronics)
	books := testutil.CreateTestCategory(t, client, "Books", "")

	own := testutil.ActivePromotion(domain.ScopeCategory, electronics, domain.DiscountFlat, "20", now)
	onMobiles := testutil.ActivePromotion(domain.ScopeCategory, mobiles, domain.DiscountPercentage, "15", now)
	onLaptops := testutil.ActivePromotion(domain.ScopeCategory, laptops, domain.DiscountPercentage, "5", now)
	onBooks := testutil.ActivePromotion(domain.ScopeCategory, books, domain.DiscountPercentage, "30", now)
	for _, p := range []*domain.Promotion{own, onMobiles, onLaptops, onBooks} {
		testutil.CreateTestPromotion(t, client, p)
	}

	direct, err := promotions.FindCategoryPromotions(ctx, electronics, now)
	require.NoError(t, err)
	require.Len(t, direct, 1)
	assert.Equal(t, own.ID, direct[0].ID)
	assert.Equal(t, domain.ScopeCategory, direct[0].Scope)

	children, err := promotions.FindCategoryPromotionsIn(ctx, []string{mobiles, laptops}, now)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, onMobiles.ID, children[0].ID)
	assert.Equal(t, onLaptops.ID, children[1].ID)

	none, err := promotions.FindCategoryPromotionsIn(ctx, nil, now)
	require.NoError(t, err)
	assert.Empty(t, none)

	unrelated, err := promotions.FindCategoryPromotionsIn(ctx, []string{books, "missing"}, now)
	require.NoError(t, err)
	require.Len(t, unrelated, 1)
	assert.Equal(t, onBooks.ID, unrelated[0].ID)
}
