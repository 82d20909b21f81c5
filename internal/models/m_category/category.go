package m_category

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the categories table.
const (
	TableName = "categories"

	CategoryID = "category_id"
	Name       = "name"
	ParentID   = "parent_id"
	CreatedAt  = "created_at"
)

// Columns lists every column in read order.
var Columns = []string{CategoryID, Name, ParentID, CreatedAt}

// Data represents one categories row.
type Data struct {
	CategoryID string             `spanner:"category_id"`
	Name       string             `spanner:"name"`
	ParentID   spanner.NullString `spanner:"parent_id"`
	CreatedAt  time.Time          `spanner:"created_at"`
}

// Model provides type-safe operations on the categories table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a category stamped with the commit time.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{CategoryID, Name, ParentID, CreatedAt},
		[]interface{}{data.CategoryID, data.Name, data.ParentID, spanner.CommitTimestamp},
	)
}
