package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func promo(t *testing.T, id string, scope PromotionScope, kind DiscountKind, value string, created time.Time) *Promotion {
	t.Helper()
	rule, err := NewDiscountRule(kind, dec(value))
	require.NoError(t, err)
	p, err := NewPromotion(id, scope, "target", rule, t0.Add(-time.Hour), t0.Add(time.Hour), true, created, created)
	require.NoError(t, err)
	return p
}

func TestPromotion_IsValidAt(t *testing.T) {
	p := promo(t, "p1", ScopeProduct, DiscountFlat, "5", t0)

	t.Run("window is inclusive at both ends", func(t *testing.T) {
		assert.True(t, p.IsValidAt(p.StartDate))
		assert.True(t, p.IsValidAt(p.EndDate))
		assert.True(t, p.IsValidAt(t0))
	})

	t.Run("outside window", func(t *testing.T) {
		assert.False(t, p.IsValidAt(p.StartDate.Add(-time.Nanosecond)))
		assert.False(t, p.IsValidAt(p.EndDate.Add(time.Nanosecond)))
	})

	t.Run("inactive", func(t *testing.T) {
		inactive := *p
		inactive.IsActive = false
		assert.False(t, inactive.IsValidAt(t0))
	})
}

func TestNewPromotion_RejectsInvertedWindow(t *testing.T) {
	rule, _ := NewDiscountRule(DiscountFlat, dec("1"))
	_, err := NewPromotion("x", ScopeProduct, "p", rule, t0, t0.Add(-time.Second), true, t0, t0)
	assert.ErrorIs(t, err, ErrInvalidPromotionWindow)
}

func TestBestPromotion(t *testing.T) {
	t.Run("highest value wins", func(t *testing.T) {
		low := promo(t, "a", ScopeProduct, DiscountPercentage, "5", t0)
		high := promo(t, "b", ScopeProduct, DiscountPercentage, "20", t0.Add(-time.Hour))
		assert.Same(t, high, BestPromotion([]*Promotion{low, high}, t0))
	})

	t.Run("product tie goes to most recently created", func(t *testing.T) {
		older := promo(t, "a", ScopeProduct, DiscountFlat, "10", t0.Add(-2*time.Hour))
		newer := promo(t, "b", ScopeProduct, DiscountFlat, "10", t0.Add(-time.Hour))
		assert.Same(t, newer, BestPromotion([]*Promotion{older, newer}, t0))
		assert.Same(t, newer, BestPromotion([]*Promotion{newer, older}, t0))
	})

	t.Run("category tie goes to most recently updated", func(t *testing.T) {
		a := promo(t, "a", ScopeCategory, DiscountFlat, "10", t0.Add(-2*time.Hour))
		b := promo(t, "b", ScopeCategory, DiscountFlat, "10", t0.Add(-2*time.Hour))
		a.UpdatedAt = t0.Add(-time.Minute)
		assert.Same(t, a, BestPromotion([]*Promotion{b, a}, t0))
	})

	t.Run("full tie is decided by id", func(t *testing.T) {
		a := promo(t, "a", ScopeProduct, DiscountFlat, "10", t0)
		b := promo(t, "b", ScopeProduct, DiscountFlat, "10", t0)
		assert.Same(t, b, BestPromotion([]*Promotion{a, b}, t0))
		assert.Same(t, b, BestPromotion([]*Promotion{b, a}, t0))
	})

	t.Run("invalid candidates are ignored", func(t *testing.T) {
		valid := promo(t, "a", ScopeProduct, DiscountFlat, "1", t0)
		inactive := promo(t, "b", ScopeProduct, DiscountFlat, "50", t0)
		inactive.IsActive = false
		assert.Same(t, valid, BestPromotion([]*Promotion{inactive, nil, valid}, t0))
		assert.Nil(t, BestPromotion([]*Promotion{inactive}, t0))
		assert.Nil(t, BestPromotion(nil, t0))
	})
}
