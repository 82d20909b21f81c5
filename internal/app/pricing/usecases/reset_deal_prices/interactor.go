package reset_deal_prices

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/clock"
)

// Request scopes a reset. With both fields empty every deal price is cleared.
type Request struct {
	// Only restricts the reset to these SKUs.
	Only []string
	// Keep excludes these SKUs from the reset.
	Keep map[string]bool
	// Reason is logged with every cleared product.
	Reason string
}

// Result reports what the reset did.
type Result struct {
	Cleared []string
	Failed  []string
}

// Interactor clears deal prices so products fall back to promotions and MRP.
type Interactor struct {
	catalog contracts.CatalogStore
	clock   clock.Clock
}

// NewInteractor creates a new reset deal prices interactor.
func NewInteractor(catalog contracts.CatalogStore, clk clock.Clock) *Interactor {
	return &Interactor{catalog: catalog, clock: clk}
}

// Execute clears the deal prices in scope. A product that fails to save is
// reported in Result.Failed and the reset carries on.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	products, err := i.catalog.ListDealPriceProducts(ctx)
	if err != nil {
		return nil, err
	}

	var only map[string]bool
	if len(req.Only) > 0 {
		only = make(map[string]bool, len(req.Only))
		for _, sku := range req.Only {
			only[sku] = true
		}
	}

	res := &Result{}
	now := i.clock.Now()
	for _, p := range products {
		if only != nil && !only[p.SKU()] {
			continue
		}
		if req.Keep[p.SKU()] {
			continue
		}
		if !p.ClearDealPrice(now) {
			continue
		}
		if err := i.catalog.SaveProduct(ctx, p); err != nil {
			log.Error().Err(err).Str("sku", p.SKU()).Msg("failed to clear deal price")
			res.Failed = append(res.Failed, p.SKU())
			continue
		}
		res.Cleared = append(res.Cleared, p.SKU())
	}

	log.Info().
		Str("reason", req.Reason).
		Int("cleared", len(res.Cleared)).
		Int("failed", len(res.Failed)).
		Msg("deal prices reset")
	return res, nil
}
