package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/committer"
)

// CatalogStore implements contracts.CatalogStore on Spanner. Product saves
// go through a commit plan carrying the outbox rows and a version guard.
type CatalogStore struct {
	client     *spanner.Client
	committer  *committer.Committer
	products   *ProductRepo
	categories *CategoryRepo
	outbox     *OutboxRepo
	clock      clock.Clock
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(client *spanner.Client, c *committer.Committer, clk clock.Clock) *CatalogStore {
	return &CatalogStore{
		client:     client,
		committer:  c,
		products:   NewProductRepo(client),
		categories: NewCategoryRepo(client),
		outbox:     NewOutboxRepo(),
		clock:      clk,
	}
}

var _ contracts.CatalogStore = (*CatalogStore)(nil)

// GetCategory implements contracts.CategoryReader.
func (s *CatalogStore) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

// ChildCategories implements contracts.CategoryReader.
func (s *CatalogStore) ChildCategories(ctx context.Context, parentID string) ([]*domain.Category, error) {
	return s.categories.ChildCategories(ctx, parentID)
}

// LoadCategoryTree implements contracts.CatalogStore.
func (s *CatalogStore) LoadCategoryTree(ctx context.Context) (*domain.CategoryTree, error) {
	return s.categories.LoadTree(ctx)
}

// GetProductBySKU implements contracts.CatalogStore.
func (s *CatalogStore) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.products.GetBySKU(ctx, sku)
}

// GetOrCreateCategory implements contracts.CatalogStore.
func (s *CatalogStore) GetOrCreateCategory(ctx context.Context, name, parentID string) (*domain.Category, error) {
	key := domain.NormalizeCategoryName(name)
	if key == "" {
		return nil, domain.ErrEmptyCategory
	}

	var result *domain.Category
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		existing, err := s.categories.findByName(ctx, txn, key, parentID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = existing
			return nil
		}
		result = &domain.Category{ID: uuid.New().String(), Name: key, ParentID: parentID, CreatedAt: s.clock.Now()}
		return txn.BufferWrite([]*spanner.Mutation{s.categories.InsertMut(result)})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create category %q: %w", key, err)
	}
	return result, nil
}

// GetOrCreateProduct implements contracts.CatalogStore. A new product is
// returned unsaved; SaveProduct inserts it.
func (s *CatalogStore) GetOrCreateProduct(ctx context.Context, sku string, defaults contracts.ProductDefaults) (*domain.Product, bool, error) {
	p, err := s.products.GetBySKU(ctx, sku)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, false, err
	}

	p, err = domain.NewProduct(uuid.New().String(), sku, defaults.Name, defaults.CategoryID, defaults.SubcategoryID, defaults.MRP, s.clock.Now())
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// SaveProduct implements contracts.CatalogStore.
func (s *CatalogStore) SaveProduct(ctx context.Context, p *domain.Product) error {
	plan := committer.NewPlan()

	if p.IsNew() {
		plan.Add(s.products.InsertMut(p))
	} else {
		mut := s.products.UpdateMut(p)
		if mut == nil && len(p.DomainEvents()) == 0 {
			return nil
		}
		plan.Add(mut)
		plan.Guard(s.products.VersionGuard(p))
	}

	eventMuts, err := s.outbox.EventMuts(p.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(eventMuts)

	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to save product %s: %w", p.SKU(), err)
	}
	p.MarkPersisted()
	return nil
}

// ListDealPriceProducts implements contracts.CatalogStore.
func (s *CatalogStore) ListDealPriceProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListDealPrice(ctx)
}
