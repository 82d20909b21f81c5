package services

import (
	"context"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// TreeCategoryReader answers category lookups from an in-memory arena. A
// batch loads the tree once and resolves every row against it.
type TreeCategoryReader struct {
	tree *domain.CategoryTree
}

// NewTreeCategoryReader wraps tree.
func NewTreeCategoryReader(tree *domain.CategoryTree) *TreeCategoryReader {
	return &TreeCategoryReader{tree: tree}
}

var _ contracts.CategoryReader = (*TreeCategoryReader)(nil)

// GetCategory implements contracts.CategoryReader.
func (r *TreeCategoryReader) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.tree.Get(id)
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

// ChildCategories implements contracts.CategoryReader.
func (r *TreeCategoryReader) ChildCategories(_ context.Context, parentID string) ([]*domain.Category, error) {
	return r.tree.Children(parentID), nil
}
