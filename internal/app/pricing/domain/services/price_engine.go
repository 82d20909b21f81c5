package services

import (
	"context"
	"time"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/clock"
)

// PriceEngine is the single source of truth for what a product costs right
// now. It never writes.
type PriceEngine struct {
	resolver *PromotionResolver
	clock    clock.Clock
}

// NewPriceEngine creates a new PriceEngine.
func NewPriceEngine(resolver *PromotionResolver, clk clock.Clock) *PriceEngine {
	return &PriceEngine{resolver: resolver, clock: clk}
}

// WithCategories returns an engine whose resolver reads categories from
// categories, typically a TreeCategoryReader loaded for one batch.
func (e *PriceEngine) WithCategories(categories contracts.CategoryReader) *PriceEngine {
	return &PriceEngine{resolver: e.resolver.WithCategories(categories), clock: e.clock}
}

// CalculatePrice resolves the price of product at the current instant.
func (e *PriceEngine) CalculatePrice(ctx context.Context, product *domain.Product) (domain.PriceResult, error) {
	return e.CalculatePriceAt(ctx, product, e.clock.Now())
}

// CalculatePriceAt resolves the price of product at now. A deal price beats
// every promotion and suppresses it; otherwise the resolved promotion is
// applied to MRP; otherwise the price is MRP.
func (e *PriceEngine) CalculatePriceAt(ctx context.Context, product *domain.Product, now time.Time) (domain.PriceResult, error) {
	mrp := product.MRP()

	if product.HasDealPrice() {
		return priced(mrp, product.SalePrice(), domain.Resolution{}, domain.SourceDeal), nil
	}

	res, err := e.resolver.ResolveAt(ctx, product, now)
	if err != nil {
		return domain.PriceResult{}, err
	}
	if !res.Found() {
		return priced(mrp, mrp, res, domain.SourceNone), nil
	}

	source := domain.SourceCategoryPromotion
	if res.Tier == domain.TierProduct {
		source = domain.SourceProductPromotion
	}
	return priced(mrp, res.Promotion.Apply(mrp), res, source), nil
}

// EffectivePrice is the price an incoming sheet row is checked against: the
// resolved promotion applied to the stored price (sale price or MRP), or the
// stored price when no promotion is valid.
func (e *PriceEngine) EffectivePrice(ctx context.Context, product *domain.Product, now time.Time) (*domain.Money, error) {
	base := product.CurrentPrice()

	res, err := e.resolver.ResolveAt(ctx, product, now)
	if err != nil {
		return nil, err
	}
	if !res.Found() {
		return base, nil
	}
	return res.Promotion.Apply(base), nil
}

// priced builds a result with final price capped at MRP so the discount is
// never negative.
func priced(mrp, final *domain.Money, res domain.Resolution, source domain.PriceSource) domain.PriceResult {
	final = final.Min(mrp).Round()
	return domain.PriceResult{
		MRP:        mrp,
		FinalPrice: final,
		Discount:   mrp.Subtract(final),
		Promotion:  res.Promotion,
		Tier:       res.Tier,
		Source:     source,
	}
}
