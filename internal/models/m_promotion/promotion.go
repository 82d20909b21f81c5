package m_promotion

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Table names. Both tables share the same shape apart from the target column.
const (
	ProductTable  = "product_promotions"
	CategoryTable = "category_promotions"
)

// Field name constants shared by both promotion tables.
const (
	PromotionID   = "promotion_id"
	ProductID     = "product_id"
	CategoryID    = "category_id"
	DiscountType  = "discount_type"
	DiscountValue = "discount_value"
	StartDate     = "start_date"
	EndDate       = "end_date"
	IsActive      = "is_active"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// Data is one promotion row. TargetID is read from product_id or category_id
// through a column alias.
type Data struct {
	PromotionID   string              `spanner:"promotion_id"`
	TargetID      string              `spanner:"target_id"`
	DiscountType  string              `spanner:"discount_type"`
	DiscountValue spanner.NullNumeric `spanner:"discount_value"`
	StartDate     time.Time           `spanner:"start_date"`
	EndDate       time.Time           `spanner:"end_date"`
	IsActive      bool                `spanner:"is_active"`
	CreatedAt     time.Time           `spanner:"created_at"`
	UpdatedAt     time.Time           `spanner:"updated_at"`
}

// TargetColumn returns the foreign key column of table.
func TargetColumn(table string) string {
	if table == CategoryTable {
		return CategoryID
	}
	return ProductID
}

// SelectColumns returns the projection that fills Data from table.
func SelectColumns(table string) []string {
	return []string{
		"p." + PromotionID,
		"p." + TargetColumn(table) + " AS target_id",
		"p." + DiscountType,
		"p." + DiscountValue,
		"p." + StartDate,
		"p." + EndDate,
		"p." + IsActive,
		"p." + CreatedAt,
		"p." + UpdatedAt,
	}
}

// Model provides type-safe operations on the promotion tables.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation writing a promotion into table. Promotions are
// managed outside this service; this is used by seeding tools and tests.
func (m *Model) InsertMut(table string, data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		table,
		[]string{PromotionID, TargetColumn(table), DiscountType, DiscountValue, StartDate, EndDate, IsActive, CreatedAt, UpdatedAt},
		[]interface{}{data.PromotionID, data.TargetID, data.DiscountType, data.DiscountValue, data.StartDate, data.EndDate, data.IsActive, data.CreatedAt, data.UpdatedAt},
	)
}
