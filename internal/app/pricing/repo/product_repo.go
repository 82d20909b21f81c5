package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_product"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/query"
)

// ProductRepo maps the product aggregate onto the products table. Write
// methods return mutations; nothing is applied here.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client) *ProductRepo {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
	}
}

// InsertMut creates a mutation inserting a new product at version 1.
func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	return r.model.InsertMut(&m_product.Data{
		ProductID:     p.ID(),
		SKU:           p.SKU(),
		Name:          p.Name(),
		CategoryID:    p.CategoryID(),
		SubcategoryID: toNullString(p.SubcategoryID()),
		MRP:           toNumeric(p.MRP()),
		SalePrice:     toNumeric(p.SalePrice()),
		IsDealPrice:   p.IsDealPrice(),
		IsActive:      p.IsActive(),
		Version:       p.Version() + 1,
	})
}

// UpdateMut creates a mutation writing only the dirty fields and bumping the
// version. Returns nil when nothing changed.
func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	changes := p.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = p.Name()
	}
	if changes.Dirty(domain.FieldCategoryID) {
		updates[m_product.CategoryID] = p.CategoryID()
	}
	if changes.Dirty(domain.FieldSubcategoryID) {
		updates[m_product.SubcategoryID] = toNullString(p.SubcategoryID())
	}
	if changes.Dirty(domain.FieldMRP) {
		updates[m_product.MRP] = toNumeric(p.MRP())
	}
	if changes.Dirty(domain.FieldSalePrice) {
		updates[m_product.SalePrice] = toNumeric(p.SalePrice())
	}
	if changes.Dirty(domain.FieldIsDealPrice) {
		updates[m_product.IsDealPrice] = p.IsDealPrice()
	}
	if changes.Dirty(domain.FieldIsActive) {
		updates[m_product.IsActive] = p.IsActive()
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_product.Version] = p.Version() + 1

	return r.model.UpdateMut(p.ID(), updates)
}

// VersionGuard returns the optimistic lock check for an update of p.
func (r *ProductRepo) VersionGuard(p *domain.Product) committer.VersionGuard {
	return committer.VersionGuard{
		Table:    m_product.TableName,
		Key:      m_product.Key(p.ID()),
		Column:   m_product.Version,
		Expected: p.Version(),
	}
}

// GetBySKU loads one product by SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.Eq(m_product.SKU, sku)).
		Limit(1).
		Build()

	products, err := r.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return products[0], nil
}

// ListDealPrice loads every product holding a deal flag or a sale price.
func (r *ProductRepo) ListDealPrice(ctx context.Context) ([]*domain.Product, error) {
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s WHERE %s = TRUE OR %s IS NOT NULL ORDER BY %s",
			joinColumns(m_product.Columns), m_product.TableName, m_product.IsDealPrice, m_product.SalePrice, m_product.SKU),
	}
	return r.query(ctx, stmt)
}

func (r *ProductRepo) query(ctx context.Context, stmt spanner.Statement) ([]*domain.Product, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var products []*domain.Product
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		products = append(products, dataToProduct(&data))
	}
	return products, nil
}

func dataToProduct(d *m_product.Data) *domain.Product {
	mrp := fromNumeric(d.MRP)
	if mrp == nil {
		mrp = domain.Zero()
	}
	return domain.ReconstructProduct(
		d.ProductID,
		d.SKU,
		d.Name,
		d.CategoryID,
		fromNullString(d.SubcategoryID),
		mrp,
		fromNumeric(d.SalePrice),
		d.IsDealPrice,
		d.IsActive,
		d.Version,
		d.CreatedAt,
		d.UpdatedAt,
	)
}
