package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_category"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_product"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_promotion"
)

func numeric(s string) spanner.NullNumeric {
	if s == "" {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *domain.MustParseMoney(s).Rat(), Valid: true}
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

// CreateTestCategory inserts a category directly and returns its ID.
func CreateTestCategory(t *testing.T, client *spanner.Client, name, parentID string) string {
	t.Helper()

	id := uuid.New().String()
	mut := m_category.NewModel().InsertMut(&m_category.Data{
		CategoryID: id,
		Name:       domain.NormalizeCategoryName(name),
		ParentID:   nullString(parentID),
	})

	_, err := client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to create test category")
	return id
}

// CreateTestProduct inserts the product described by spec and returns its ID.
func CreateTestProduct(t *testing.T, client *spanner.Client, spec ProductSpec) string {
	t.Helper()

	name := spec.Name
	if name == "" {
		name = "Product " + spec.SKU
	}

	id := uuid.New().String()
	mut := m_product.NewModel().InsertMut(&m_product.Data{
		ProductID:     id,
		SKU:           spec.SKU,
		Name:          name,
		CategoryID:    spec.CategoryID,
		SubcategoryID: nullString(spec.SubcategoryID),
		MRP:           numeric(spec.MRP),
		SalePrice:     numeric(spec.SalePrice),
		IsDealPrice:   spec.IsDealPrice,
		IsActive:      !spec.Inactive,
		Version:       1,
	})

	_, err := client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to create test product")
	return id
}

// CreateTestPromotion writes promo into its table.
func CreateTestPromotion(t *testing.T, client *spanner.Client, promo *domain.Promotion) {
	t.Helper()

	table := m_promotion.ProductTable
	if promo.Scope == domain.ScopeCategory {
		table = m_promotion.CategoryTable
	}

	value := promo.Rule.Value()
	mut := m_promotion.NewModel().InsertMut(table, &m_promotion.Data{
		PromotionID:   promo.ID,
		TargetID:      promo.TargetID,
		DiscountType:  string(promo.Rule.Kind()),
		DiscountValue: spanner.NullNumeric{Numeric: *value.Rat(), Valid: true},
		StartDate:     promo.StartDate,
		EndDate:       promo.EndDate,
		IsActive:      promo.IsActive,
		CreatedAt:     promo.CreatedAt,
		UpdatedAt:     promo.UpdatedAt,
	})

	_, err := client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to create test promotion")
}

// CreateTestOutboxEvent inserts an outbox event in the given status. A
// non-nil processedAt is stored as the processing time.
func CreateTestOutboxEvent(t *testing.T, client *spanner.Client, eventType, aggregateID, status string, processedAt *time.Time) string {
	t.Helper()

	id := uuid.New().String()
	processed := spanner.NullTime{}
	if processedAt != nil {
		processed = spanner.NullTime{Time: *processedAt, Valid: true}
	}

	mut := spanner.InsertMap(m_outbox.TableName, map[string]interface{}{
		m_outbox.EventID:     id,
		m_outbox.EventType:   eventType,
		m_outbox.AggregateID: aggregateID,
		m_outbox.Payload:     spanner.NullJSON{Value: map[string]string{"test": "data"}, Valid: true},
		m_outbox.Status:      status,
		m_outbox.CreatedAt:   spanner.CommitTimestamp,
		m_outbox.ProcessedAt: processed,
		m_outbox.RetryCount:  int64(0),
	})

	_, err := client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to create test outbox event")
	return id
}

// AssertOutboxEvent verifies an outbox event of eventType exists for aggregateID.
func AssertOutboxEvent(t *testing.T, client *spanner.Client, eventType, aggregateID string) {
	t.Helper()

	stmt := spanner.Statement{
		SQL: "SELECT event_id FROM outbox_events WHERE event_type = @eventType AND aggregate_id = @aggregateID",
		Params: map[string]interface{}{
			"eventType":   eventType,
			"aggregateID": aggregateID,
		},
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "outbox event %s not found for %s", eventType, aggregateID)
	require.NotNil(t, row)
}

// GetProductData reads a products row back for verification.
func GetProductData(t *testing.T, client *spanner.Client, productID string) *m_product.Data {
	t.Helper()

	row, err := client.Single().ReadRow(context.Background(), m_product.TableName, m_product.Key(productID), m_product.Columns)
	require.NoError(t, err, "failed to read product")

	var data m_product.Data
	require.NoError(t, row.ToStruct(&data), "failed to parse product data")
	return &data
}
