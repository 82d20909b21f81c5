package contracts

import (
	"context"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// ProductDefaults seeds a product that get-or-create has to create.
type ProductDefaults struct {
	Name          string
	CategoryID    string
	SubcategoryID string
	MRP           *domain.Money
}

// CatalogStore is the catalog persistence the import pipeline writes through.
type CatalogStore interface {
	CategoryReader

	// GetProductBySKU returns domain.ErrProductNotFound when sku is unknown.
	GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// GetOrCreateCategory finds a category by normalized name under parentID
	// ("" for a root) and creates it when missing.
	GetOrCreateCategory(ctx context.Context, name, parentID string) (*domain.Category, error)

	// GetOrCreateProduct returns the product for sku, or a new unsaved product
	// built from defaults with created set to true.
	GetOrCreateProduct(ctx context.Context, sku string, defaults ProductDefaults) (*domain.Product, bool, error)

	// SaveProduct persists the product's dirty fields and pending events. An
	// existing product is guarded by its version; a concurrent write surfaces
	// as committer.ErrVersionConflict.
	SaveProduct(ctx context.Context, product *domain.Product) error

	// ListDealPriceProducts returns every product holding a deal flag or sale price.
	ListDealPriceProducts(ctx context.Context) ([]*domain.Product, error)

	// LoadCategoryTree reads the whole category hierarchy into an arena.
	LoadCategoryTree(ctx context.Context) (*domain.CategoryTree, error)
}
