package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategoryName(t *testing.T) {
	assert.Equal(t, "Home Appliances", NormalizeCategoryName("  home   APPLIANCES "))
	assert.Equal(t, "Mobiles", NormalizeCategoryName("mobiles"))
	assert.Equal(t, "", NormalizeCategoryName("   "))
}

func TestNormalizeCategoryName_Concurrent(t *testing.T) {
	inputs := []string{"home appliances", "MOBILES", "  smart   tvs ", "laptops"}
	want := []string{"Home Appliances", "Mobiles", "Smart Tvs", "Laptops"}

	var wg sync.WaitGroup
	got := make([][]string, 16)
	for g := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]string, 0, 200*len(inputs))
			for i := 0; i < 200; i++ {
				for _, in := range inputs {
					out = append(out, NormalizeCategoryName(in))
				}
			}
			got[g] = out
		}()
	}
	wg.Wait()

	for _, out := range got {
		for i, name := range out {
			require.Equal(t, want[i%len(inputs)], name)
		}
	}
}

func TestCategoryTree(t *testing.T) {
	tree := NewCategoryTree()
	require.NoError(t, tree.Add(&Category{ID: "electronics", Name: "Electronics"}))
	require.NoError(t, tree.Add(&Category{ID: "mobiles", Name: "Mobiles", ParentID: "electronics"}))
	require.NoError(t, tree.Add(&Category{ID: "laptops", Name: "Laptops", ParentID: "electronics"}))
	require.NoError(t, tree.Add(&Category{ID: "oneplus", Name: "Oneplus", ParentID: "mobiles"}))

	t.Run("parent", func(t *testing.T) {
		p, ok := tree.Parent("oneplus")
		require.True(t, ok)
		assert.Equal(t, "mobiles", p.ID)

		_, ok = tree.Parent("electronics")
		assert.False(t, ok)
	})

	t.Run("children ordered by name", func(t *testing.T) {
		children := tree.Children("electronics")
		require.Len(t, children, 2)
		assert.Equal(t, "Laptops", children[0].Name)
		assert.Equal(t, "Mobiles", children[1].Name)
		assert.Empty(t, tree.Children("oneplus"))
	})

	t.Run("find by normalized name and parent", func(t *testing.T) {
		c, ok := tree.FindByName("  mobiles", "electronics")
		require.True(t, ok)
		assert.Equal(t, "mobiles", c.ID)

		_, ok = tree.FindByName("mobiles", "")
		assert.False(t, ok)
	})

	t.Run("unknown parent", func(t *testing.T) {
		err := tree.Add(&Category{ID: "x", Name: "X", ParentID: "nope"})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("reparenting under a descendant is a cycle", func(t *testing.T) {
		err := tree.Add(&Category{ID: "electronics", Name: "Electronics", ParentID: "oneplus"})
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("self parent is a cycle", func(t *testing.T) {
		err := tree.Add(&Category{ID: "laptops", Name: "Laptops", ParentID: "laptops"})
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("empty name", func(t *testing.T) {
		assert.ErrorIs(t, tree.Add(&Category{ID: "e"}), ErrEmptyCategory)
	})

	assert.Equal(t, 4, tree.Len())
}
