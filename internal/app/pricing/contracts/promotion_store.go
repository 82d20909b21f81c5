package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// PromotionStore is the read side of promotion records. Implementations
// return promotions valid at activeAt; callers still re-check validity.
type PromotionStore interface {
	// FindProductPromotions returns promotions targeting productID.
	FindProductPromotions(ctx context.Context, productID string, activeAt time.Time) ([]*domain.Promotion, error)

	// FindCategoryPromotions returns promotions targeting categoryID itself.
	FindCategoryPromotions(ctx context.Context, categoryID string, activeAt time.Time) ([]*domain.Promotion, error)

	// FindCategoryPromotionsIn returns promotions targeting any of categoryIDs.
	FindCategoryPromotionsIn(ctx context.Context, categoryIDs []string, activeAt time.Time) ([]*domain.Promotion, error)
}

// CategoryReader answers the tree questions the resolver asks: a category's
// parent and its direct children.
type CategoryReader interface {
	// GetCategory returns domain.ErrCategoryNotFound when id is unknown.
	GetCategory(ctx context.Context, id string) (*domain.Category, error)

	// ChildCategories returns the direct children of parentID.
	ChildCategories(ctx context.Context, parentID string) ([]*domain.Category, error)
}
