package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID     string              `spanner:"product_id"`
	SKU           string              `spanner:"sku"`
	Name          string              `spanner:"name"`
	CategoryID    string              `spanner:"category_id"`
	SubcategoryID spanner.NullString  `spanner:"subcategory_id"`
	MRP           spanner.NullNumeric `spanner:"mrp"`
	SalePrice     spanner.NullNumeric `spanner:"sale_price"`
	IsDealPrice   bool                `spanner:"is_deal_price"`
	IsActive      bool                `spanner:"is_active"`
	Version       int64               `spanner:"version"`
	CreatedAt     time.Time           `spanner:"created_at"`
	UpdatedAt     time.Time           `spanner:"updated_at"`
}
