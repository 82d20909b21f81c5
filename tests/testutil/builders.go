package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// ProductSpec describes a product to seed. Empty SalePrice means none.
type ProductSpec struct {
	SKU           string
	Name          string
	CategoryID    string
	SubcategoryID string
	MRP           string
	SalePrice     string
	IsDealPrice   bool
	Inactive      bool
}

// SeedProduct builds the product described by spec and stores it.
func SeedProduct(s *MemStore, spec ProductSpec) *domain.Product {
	name := spec.Name
	if name == "" {
		name = "Product " + spec.SKU
	}
	var sale *domain.Money
	if spec.SalePrice != "" {
		sale = domain.MustParseMoney(spec.SalePrice)
	}
	now := s.now()
	p := domain.ReconstructProduct(
		uuid.New().String(), spec.SKU, name, spec.CategoryID, spec.SubcategoryID,
		domain.MustParseMoney(spec.MRP), sale,
		spec.IsDealPrice, !spec.Inactive,
		1, now, now,
	)
	s.PutProduct(p)
	return p
}

// NewPromotion builds an active promotion over [start, end].
func NewPromotion(scope domain.PromotionScope, targetID string, kind domain.DiscountKind, value string, start, end time.Time) *domain.Promotion {
	rule, err := domain.NewDiscountRule(kind, decimal.RequireFromString(value))
	if err != nil {
		panic(err)
	}
	p, err := domain.NewPromotion(uuid.New().String(), scope, targetID, rule, start, end, true, start, start)
	if err != nil {
		panic(err)
	}
	return p
}

// ActivePromotion builds a promotion valid from a day before to a day after now.
func ActivePromotion(scope domain.PromotionScope, targetID string, kind domain.DiscountKind, value string, now time.Time) *domain.Promotion {
	return NewPromotion(scope, targetID, kind, value, now.Add(-24*time.Hour), now.Add(24*time.Hour))
}
