package get_price

import (
	"context"
	"strings"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain/services"
)

// Request contains the SKU to price.
type Request struct {
	SKU string
}

// ProductReader loads a product by SKU.
type ProductReader interface {
	GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error)
}

// Query handles the get price query use case.
type Query struct {
	products ProductReader
	engine   *services.PriceEngine
}

// NewQuery creates a new get price query.
func NewQuery(products ProductReader, engine *services.PriceEngine) *Query {
	return &Query{
		products: products,
		engine:   engine,
	}
}

// Execute resolves what the product with the given SKU costs now.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.PriceDTO, error) {
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, domain.ErrEmptySKU
	}

	product, err := q.products.GetProductBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	result, err := q.engine.CalculatePrice(ctx, product)
	if err != nil {
		return nil, err
	}

	dto := &contracts.PriceDTO{
		ProductID:     product.ID(),
		SKU:           product.SKU(),
		Name:          product.Name(),
		MRP:           result.MRP,
		FinalPrice:    result.FinalPrice,
		Discount:      result.Discount,
		Source:        result.Source,
		Label:         result.Label(),
		Tier:          result.Tier.String(),
		ShowMRPStrike: result.ShowMRPStrike(),
	}
	if result.Promotion != nil {
		dto.PromotionID = result.Promotion.ID
		dto.Promotion = result.Promotion.Rule.String()
	}
	return dto, nil
}
