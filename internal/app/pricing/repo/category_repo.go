package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/models/m_category"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/query"
)

// CategoryRepo reads and writes the categories table.
type CategoryRepo struct {
	client *spanner.Client
	model  *m_category.Model
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(client *spanner.Client) *CategoryRepo {
	return &CategoryRepo{
		client: client,
		model:  m_category.NewModel(),
	}
}

// GetCategory implements contracts.CategoryReader.
func (r *CategoryRepo) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row, err := r.client.Single().ReadRow(ctx, m_category.TableName, spanner.Key{id}, m_category.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to read category: %w", err)
	}

	var data m_category.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	return dataToCategory(&data), nil
}

// ChildCategories implements contracts.CategoryReader.
func (r *CategoryRepo) ChildCategories(ctx context.Context, parentID string) ([]*domain.Category, error) {
	stmt := query.From(m_category.TableName).
		Select(m_category.Columns...).
		Where(query.Eq(m_category.ParentID, parentID)).
		OrderBy(m_category.Name, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*domain.Category
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate child categories: %w", err)
		}
		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		out = append(out, dataToCategory(&data))
	}
	return out, nil
}

// LoadTree reads every category into an arena.
func (r *CategoryRepo) LoadTree(ctx context.Context) (*domain.CategoryTree, error) {
	iter := r.client.Single().Read(ctx, m_category.TableName, spanner.AllKeys(), m_category.Columns)
	defer iter.Stop()

	var all []*domain.Category
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}
		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		all = append(all, dataToCategory(&data))
	}

	// Parents must be added before children.
	tree := domain.NewCategoryTree()
	for len(all) > 0 {
		var pending []*domain.Category
		for _, c := range all {
			if err := tree.Add(c); err != nil {
				pending = append(pending, c)
			}
		}
		if len(pending) == len(all) {
			return nil, fmt.Errorf("%d categories have missing parents or cycles: %w", len(pending), domain.ErrCategoryCycle)
		}
		all = pending
	}
	return tree, nil
}

// findByName looks a category up inside a read-write transaction so the
// following insert cannot race another creator.
func (r *CategoryRepo) findByName(ctx context.Context, txn *spanner.ReadWriteTransaction, name, parentID string) (*domain.Category, error) {
	b := query.From(m_category.TableName).
		Select(m_category.Columns...).
		Where(query.Eq(m_category.Name, name)).
		Limit(1)
	if parentID == "" {
		b = b.Where(query.IsNull(m_category.ParentID))
	} else {
		b = b.Where(query.Eq(m_category.ParentID, parentID))
	}

	iter := txn.Query(ctx, b.Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	var data m_category.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	return dataToCategory(&data), nil
}

// InsertMut creates a mutation inserting c.
func (r *CategoryRepo) InsertMut(c *domain.Category) *spanner.Mutation {
	return r.model.InsertMut(&m_category.Data{
		CategoryID: c.ID,
		Name:       c.Name,
		ParentID:   toNullString(c.ParentID),
	})
}

func dataToCategory(d *m_category.Data) *domain.Category {
	return &domain.Category{
		ID:        d.CategoryID,
		Name:      d.Name,
		ParentID:  fromNullString(d.ParentID),
		CreatedAt: d.CreatedAt,
	}
}
