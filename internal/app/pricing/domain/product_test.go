package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingProduct(mrp, sale string, deal bool) *Product {
	var salePrice *Money
	if sale != "" {
		salePrice = MustParseMoney(sale)
	}
	return ReconstructProduct("p1", "SKU-1", "Phone", "cat", "", MustParseMoney(mrp), salePrice, deal, true, 3, t0, t0)
}

func TestNewProduct(t *testing.T) {
	t.Run("valid product marks fields and records creation", func(t *testing.T) {
		p, err := NewProduct("id", " SKU-9 ", "Phone", "cat", "sub", MustParseMoney("199.999"), t0)
		require.NoError(t, err)

		assert.Equal(t, "SKU-9", p.SKU())
		assert.Equal(t, "200.00", p.MRP().String())
		assert.True(t, p.IsActive())
		assert.True(t, p.IsNew())
		assert.False(t, p.HasDealPrice())
		assert.True(t, p.Changes().Dirty(FieldMRP))
		assert.True(t, p.Changes().Dirty(FieldSubcategoryID))

		require.Len(t, p.DomainEvents(), 1)
		assert.Equal(t, "product.created", p.DomainEvents()[0].EventType())
	})

	t.Run("validation", func(t *testing.T) {
		_, err := NewProduct("id", "  ", "n", "c", "", MustParseMoney("1"), t0)
		assert.ErrorIs(t, err, ErrEmptySKU)

		_, err = NewProduct("id", "s", "", "c", "", MustParseMoney("1"), t0)
		assert.ErrorIs(t, err, ErrEmptyName)

		_, err = NewProduct("id", "s", "n", "", "", MustParseMoney("1"), t0)
		assert.ErrorIs(t, err, ErrInvalidCategory)

		_, err = NewProduct("id", "s", "n", "c", "", MustParseMoney("0"), t0)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = NewProduct("id", "s", "n", "c", "", nil, t0)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestProduct_CurrentPriceAndDeal(t *testing.T) {
	assert.Equal(t, "100.00", existingProduct("100", "", false).CurrentPrice().String())
	assert.Equal(t, "80.00", existingProduct("100", "80", false).CurrentPrice().String())

	t.Run("deal flag without sale price is no deal", func(t *testing.T) {
		assert.False(t, existingProduct("100", "", true).HasDealPrice())
		assert.True(t, existingProduct("100", "80", true).HasDealPrice())
	})
}

func TestProduct_ApplyImportedPrice(t *testing.T) {
	later := t0.Add(time.Hour)

	t.Run("sets deal price and marks only changed fields", func(t *testing.T) {
		p := existingProduct("100", "", false)

		changed, err := p.ApplyImportedPrice(ImportedPrice{CategoryID: "cat", NetPrice: MustParseMoney("90")}, later)
		require.NoError(t, err)
		assert.True(t, changed)

		assert.Equal(t, []string{FieldIsDealPrice, FieldSalePrice}, p.Changes().DirtyFields())
		assert.True(t, p.HasDealPrice())
		assert.Equal(t, "90.00", p.SalePrice().String())
		assert.Equal(t, later, p.UpdatedAt())

		require.Len(t, p.DomainEvents(), 1)
		ev, ok := p.DomainEvents()[0].(*DealPriceSetEvent)
		require.True(t, ok)
		assert.Equal(t, "100.00", ev.PreviousPrice.String())
		assert.Equal(t, "90.00", ev.DealPrice.String())
	})

	t.Run("moves category, updates mrp and reactivates", func(t *testing.T) {
		p := ReconstructProduct("p1", "SKU-1", "Phone", "old", "", MustParseMoney("100"), nil, false, false, 1, t0, t0)

		_, err := p.ApplyImportedPrice(ImportedPrice{
			CategoryID:    "new",
			SubcategoryID: "sub",
			MRP:           MustParseMoney("120"),
			NetPrice:      MustParseMoney("110"),
		}, later)
		require.NoError(t, err)

		assert.Equal(t, "new", p.CategoryID())
		assert.Equal(t, "sub", p.SubcategoryID())
		assert.Equal(t, "120.00", p.MRP().String())
		assert.True(t, p.IsActive())
		assert.ElementsMatch(t, []string{
			FieldCategoryID, FieldSubcategoryID, FieldMRP, FieldSalePrice, FieldIsDealPrice, FieldIsActive,
		}, p.Changes().DirtyFields())
	})

	t.Run("same state is no change", func(t *testing.T) {
		p := existingProduct("100", "90", true)

		changed, err := p.ApplyImportedPrice(ImportedPrice{CategoryID: "cat", MRP: MustParseMoney("100.00"), NetPrice: MustParseMoney("90.00")}, later)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.False(t, p.Changes().HasChanges())
		assert.Empty(t, p.DomainEvents())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		p := existingProduct("100", "", false)

		_, err := p.ApplyImportedPrice(ImportedPrice{CategoryID: "cat", NetPrice: MustParseMoney("0")}, later)
		assert.ErrorIs(t, err, ErrInvalidNetPrice)

		_, err = p.ApplyImportedPrice(ImportedPrice{CategoryID: "cat"}, later)
		assert.ErrorIs(t, err, ErrInvalidNetPrice)

		_, err = p.ApplyImportedPrice(ImportedPrice{CategoryID: "cat", MRP: MustParseMoney("-1"), NetPrice: MustParseMoney("5")}, later)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = p.ApplyImportedPrice(ImportedPrice{NetPrice: MustParseMoney("5")}, later)
		assert.ErrorIs(t, err, ErrInvalidCategory)

		assert.False(t, p.Changes().HasChanges())
	})
}

func TestProduct_ClearDealPrice(t *testing.T) {
	t.Run("clears flag and sale price", func(t *testing.T) {
		p := existingProduct("100", "70", true)

		assert.True(t, p.ClearDealPrice(t0))
		assert.False(t, p.HasDealPrice())
		assert.Nil(t, p.SalePrice())
		assert.ElementsMatch(t, []string{FieldIsDealPrice, FieldSalePrice}, p.Changes().DirtyFields())

		ev, ok := p.DomainEvents()[0].(*DealPriceClearedEvent)
		require.True(t, ok)
		assert.Equal(t, "70.00", ev.PreviousDealPrice.String())
	})

	t.Run("nothing to clear", func(t *testing.T) {
		p := existingProduct("100", "", false)
		assert.False(t, p.ClearDealPrice(t0))
		assert.Empty(t, p.DomainEvents())
	})
}

func TestProduct_MarkPersisted(t *testing.T) {
	p := existingProduct("100", "", false)
	_, err := p.ApplyImportedPrice(ImportedPrice{CategoryID: "cat", NetPrice: MustParseMoney("90")}, t0)
	require.NoError(t, err)

	p.MarkPersisted()

	assert.Equal(t, int64(4), p.Version())
	assert.False(t, p.Changes().HasChanges())
	assert.Empty(t, p.DomainEvents())
}
