package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_promotion"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/query"
)

// PromotionRepo implements contracts.PromotionStore over the two promotion tables.
type PromotionRepo struct {
	client *spanner.Client
}

// NewPromotionRepo creates a new PromotionRepo.
func NewPromotionRepo(client *spanner.Client) contracts.PromotionStore {
	return &PromotionRepo{client: client}
}

// FindProductPromotions implements contracts.PromotionStore.
func (r *PromotionRepo) FindProductPromotions(ctx context.Context, productID string, activeAt time.Time) ([]*domain.Promotion, error) {
	b := validAt(query.From(m_promotion.ProductTable+" p"), m_promotion.ProductTable, activeAt).
		Where(query.Eq("p."+m_promotion.ProductID, productID))
	return r.find(ctx, b, domain.ScopeProduct)
}

// FindCategoryPromotions implements contracts.PromotionStore.
func (r *PromotionRepo) FindCategoryPromotions(ctx context.Context, categoryID string, activeAt time.Time) ([]*domain.Promotion, error) {
	b := validAt(query.From(m_promotion.CategoryTable+" p"), m_promotion.CategoryTable, activeAt).
		Where(query.Eq("p."+m_promotion.CategoryID, categoryID))
	return r.find(ctx, b, domain.ScopeCategory)
}

// FindCategoryPromotionsIn implements contracts.PromotionStore.
func (r *PromotionRepo) FindCategoryPromotionsIn(ctx context.Context, categoryIDs []string, activeAt time.Time) ([]*domain.Promotion, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	b := validAt(query.From(m_promotion.CategoryTable+" p"), m_promotion.CategoryTable, activeAt).
		Where(query.In("p."+m_promotion.CategoryID, categoryIDs))
	return r.find(ctx, b, domain.ScopeCategory)
}

func validAt(b *query.Builder, table string, at time.Time) *query.Builder {
	return b.Select(m_promotion.SelectColumns(table)...).
		Where(query.Eq("p."+m_promotion.IsActive, true)).
		Where(query.Lte("p."+m_promotion.StartDate, at)).
		Where(query.Gte("p."+m_promotion.EndDate, at)).
		OrderBy("p."+m_promotion.DiscountValue, query.Desc)
}

func (r *PromotionRepo) find(ctx context.Context, b *query.Builder, scope domain.PromotionScope) ([]*domain.Promotion, error) {
	iter := r.client.Single().Query(ctx, b.Build())
	defer iter.Stop()

	var out []*domain.Promotion
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate promotions: %w", err)
		}

		var data m_promotion.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse promotion: %w", err)
		}
		p, err := dataToPromotion(&data, scope)
		if err != nil {
			return nil, fmt.Errorf("promotion %s: %w", data.PromotionID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func dataToPromotion(d *m_promotion.Data, scope domain.PromotionScope) (*domain.Promotion, error) {
	kind, err := domain.ParseDiscountKind(d.DiscountType)
	if err != nil {
		return nil, err
	}
	value := fromNumeric(d.DiscountValue)
	if value == nil {
		return nil, domain.ErrMalformedAmount
	}
	rule, err := domain.NewDiscountRule(kind, value.Decimal())
	if err != nil {
		return nil, err
	}
	return domain.NewPromotion(d.PromotionID, scope, d.TargetID, rule, d.StartDate, d.EndDate, d.IsActive, d.CreatedAt, d.UpdatedAt)
}
