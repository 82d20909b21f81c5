package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "sku", "name").
		Build()

	assert.Equal(t, "SELECT product_id, sku, name FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("categories").Build()

	assert.Equal(t, "SELECT * FROM categories", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_ValidityWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stmt := From("product_promotions").
		Select("promotion_id", "discount_value").
		Where(Eq("product_id", "p-1")).
		Where(Eq("is_active", true)).
		Where(Lte("start_date", now)).
		Where(Gte("end_date", now)).
		Build()

	assert.Equal(t,
		"SELECT promotion_id, discount_value FROM product_promotions WHERE product_id = @p0 AND is_active = @p1 AND start_date <= @p2 AND end_date >= @p3",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "p-1",
		"p1": true,
		"p2": now,
		"p3": now,
	}, stmt.Params)
}

func TestBuilder_InAndMultiKeyOrder(t *testing.T) {
	ids := []string{"cat-1", "cat-2"}
	stmt := From("category_promotions p").
		Select("p.promotion_id").
		Where(In("p.category_id", ids)).
		OrderBy("p.discount_value", Desc).
		OrderBy("p.updated_at", Desc).
		Build()

	assert.Equal(t,
		"SELECT p.promotion_id FROM category_promotions p WHERE p.category_id IN UNNEST(@p0) ORDER BY p.discount_value DESC, p.updated_at DESC",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": ids}, stmt.Params)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("skipped_price_imports").
		Select("skipped_id").
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, "SELECT skipped_id FROM skipped_price_imports LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("products").
		Select("product_id", "sku").
		Where(Eq("is_deal_price", true)).
		OrderBy("updated_at", Desc).
		Limit(50)

	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE is_deal_price = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": true}, countStmt.Params)

	// original builder is untouched
	assert.Contains(t, builder.Build().SQL, "LIMIT @limit")
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("product_id")

	stmt1 := base.Where(Eq("is_active", true)).Build()
	stmt2 := base.Where(Eq("category_id", "c-1")).Build()

	assert.Contains(t, stmt1.SQL, "is_active = @p0")
	assert.NotContains(t, stmt1.SQL, "category_id")
	assert.Contains(t, stmt2.SQL, "category_id = @p0")
	assert.NotContains(t, stmt2.SQL, "is_active")
}

func TestBuilder_WhereWithIsNull(t *testing.T) {
	stmt := From("categories").
		Select("category_id").
		Where(Eq("name", "Electronics")).
		Where(IsNull("parent_id")).
		Build()

	assert.Equal(t, "SELECT category_id FROM categories WHERE name = @p0 AND parent_id IS NULL", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "Electronics"}, stmt.Params)
}

func TestCondition_In(t *testing.T) {
	sql, params := In("sku", []string{"A", "B"}).SQL(2)

	assert.Equal(t, "sku IN UNNEST(@p2)", sql)
	assert.Equal(t, map[string]interface{}{"p2": []string{"A", "B"}}, params)
}

func TestCondition_Comparisons(t *testing.T) {
	t.Run("eq", func(t *testing.T) {
		sql, params := Eq("status", "completed").SQL(5)
		assert.Equal(t, "status = @p5", sql)
		assert.Equal(t, map[string]interface{}{"p5": "completed"}, params)
	})

	t.Run("lte", func(t *testing.T) {
		sql, _ := Lte("start_date", "x").SQL(0)
		assert.Equal(t, "start_date <= @p0", sql)
	})

	t.Run("gte", func(t *testing.T) {
		sql, _ := Gte("end_date", "x").SQL(1)
		assert.Equal(t, "end_date >= @p1", sql)
	})

	t.Run("is not null", func(t *testing.T) {
		sql, params := IsNotNull("sale_price").SQL(0)
		assert.Equal(t, "sale_price IS NOT NULL", sql)
		assert.Empty(t, params)
	})
}

func TestBuilder_String(t *testing.T) {
	str := From("products").Where(Eq("sku", "X")).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
}
