package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/clock"
)

// PromotionResolver picks the single promotion that applies to a product by
// walking a fixed chain of scopes. Tiers are never combined.
//
//  1. product promotions
//  2. promotions on the product's category
//  3. promotions on categories whose parent is the product's category
//  4. promotions on the category's parent
//
// Within one tier the highest discount value wins.
type PromotionResolver struct {
	promotions contracts.PromotionStore
	categories contracts.CategoryReader
	clock      clock.Clock
}

// NewPromotionResolver creates a new PromotionResolver.
func NewPromotionResolver(promotions contracts.PromotionStore, categories contracts.CategoryReader, clk clock.Clock) *PromotionResolver {
	return &PromotionResolver{
		promotions: promotions,
		categories: categories,
		clock:      clk,
	}
}

// WithCategories returns a resolver that answers category lookups from
// categories instead, sharing the promotion store and clock.
func (r *PromotionResolver) WithCategories(categories contracts.CategoryReader) *PromotionResolver {
	return &PromotionResolver{
		promotions: r.promotions,
		categories: categories,
		clock:      r.clock,
	}
}

// Resolve reads the clock once and resolves at that instant.
func (r *PromotionResolver) Resolve(ctx context.Context, product *domain.Product) (domain.Resolution, error) {
	return r.ResolveAt(ctx, product, r.clock.Now())
}

// ResolveAt resolves the promotion valid for product at now.
func (r *PromotionResolver) ResolveAt(ctx context.Context, product *domain.Product, now time.Time) (domain.Resolution, error) {
	none := domain.Resolution{Tier: domain.TierNone}

	promos, err := r.promotions.FindProductPromotions(ctx, product.ID(), now)
	if err != nil {
		return none, fmt.Errorf("failed to load product promotions: %w", err)
	}
	if best := domain.BestPromotion(promos, now); best != nil {
		return domain.Resolution{Promotion: best, Tier: domain.TierProduct}, nil
	}

	categoryID := product.CategoryID()
	if categoryID == "" {
		return none, nil
	}

	promos, err = r.promotions.FindCategoryPromotions(ctx, categoryID, now)
	if err != nil {
		return none, fmt.Errorf("failed to load category promotions: %w", err)
	}
	if best := domain.BestPromotion(promos, now); best != nil {
		return domain.Resolution{Promotion: best, Tier: domain.TierCategory}, nil
	}

	children, err := r.categories.ChildCategories(ctx, categoryID)
	if err != nil {
		return none, fmt.Errorf("failed to load child categories of %s: %w", categoryID, err)
	}
	if len(children) > 0 {
		ids := make([]string, len(children))
		for i, c := range children {
			ids[i] = c.ID
		}
		promos, err = r.promotions.FindCategoryPromotionsIn(ctx, ids, now)
		if err != nil {
			return none, fmt.Errorf("failed to load child category promotions: %w", err)
		}
		if best := domain.BestPromotion(promos, now); best != nil {
			return domain.Resolution{Promotion: best, Tier: domain.TierChildCategory}, nil
		}
	}

	category, err := r.categories.GetCategory(ctx, categoryID)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return none, nil
	}
	if err != nil {
		return none, fmt.Errorf("failed to load category %s: %w", categoryID, err)
	}
	if category.IsRoot() {
		return none, nil
	}

	promos, err = r.promotions.FindCategoryPromotions(ctx, category.ParentID, now)
	if err != nil {
		return none, fmt.Errorf("failed to load parent category promotions: %w", err)
	}
	if best := domain.BestPromotion(promos, now); best != nil {
		return domain.Resolution{Promotion: best, Tier: domain.TierParentCategory}, nil
	}

	return none, nil
}
