package m_product

import (
	"sort"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a new product. The row starts at
// data.Version and both timestamps take the commit time.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			ProductID,
			SKU,
			Name,
			CategoryID,
			SubcategoryID,
			MRP,
			SalePrice,
			IsDealPrice,
			IsActive,
			Version,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.ProductID,
			data.SKU,
			data.Name,
			data.CategoryID,
			data.SubcategoryID,
			data.MRP,
			data.SalePrice,
			data.IsDealPrice,
			data.IsActive,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a mutation updating the given columns of one product.
// updated_at is always stamped. Returns nil when updates is empty.
func (m *Model) UpdateMut(productID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}
	updates[UpdatedAt] = spanner.CommitTimestamp

	cols := make([]string, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	columns := append([]string{ProductID}, cols...)
	values := make([]interface{}, 0, len(columns))
	values = append(values, productID)
	for _, col := range cols {
		values = append(values, updates[col])
	}

	return spanner.Update(TableName, columns, values)
}

// Key returns the primary key of a product row.
func Key(productID string) spanner.Key {
	return spanner.Key{productID}
}
