package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ProductID     = "product_id"
	SKU           = "sku"
	Name          = "name"
	CategoryID    = "category_id"
	SubcategoryID = "subcategory_id"
	MRP           = "mrp"
	SalePrice     = "sale_price"
	IsDealPrice   = "is_deal_price"
	IsActive      = "is_active"
	Version       = "version"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// SKUIndex is the unique secondary index on sku.
const SKUIndex = "products_by_sku"

// Columns lists every column in read order.
var Columns = []string{
	ProductID, SKU, Name, CategoryID, SubcategoryID, MRP, SalePrice,
	IsDealPrice, IsActive, Version, CreatedAt, UpdatedAt,
}
