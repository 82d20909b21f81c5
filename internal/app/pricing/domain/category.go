package domain

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a node in the catalog tree. ParentID is empty for roots.
type Category struct {
	ID        string
	Name      string
	ParentID  string
	CreatedAt time.Time
}

// IsRoot returns true if the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// NormalizeCategoryName trims, collapses inner whitespace and title-cases a
// category name, so "  home   APPLIANCES" and "Home Appliances" are the same key.
func NormalizeCategoryName(name string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(name), " "))
}

// CategoryTree is an arena of categories keyed by ID with explicit parent and
// child lookups.
type CategoryTree struct {
	nodes    map[string]*Category
	children map[string][]string
}

// NewCategoryTree creates an empty tree.
func NewCategoryTree() *CategoryTree {
	return &CategoryTree{
		nodes:    make(map[string]*Category),
		children: make(map[string][]string),
	}
}

// Add inserts c. The parent, when set, must already be in the tree, and the
// insert must not close a cycle.
func (t *CategoryTree) Add(c *Category) error {
	if c.Name == "" {
		return ErrEmptyCategory
	}
	if c.ParentID != "" {
		if _, ok := t.nodes[c.ParentID]; !ok {
			return ErrCategoryNotFound
		}
		for id := c.ParentID; id != ""; id = t.nodes[id].ParentID {
			if id == c.ID {
				return ErrCategoryCycle
			}
		}
	}
	if prev, exists := t.nodes[c.ID]; exists {
		t.detach(prev)
	}
	if c.ParentID != "" {
		t.children[c.ParentID] = append(t.children[c.ParentID], c.ID)
	}
	t.nodes[c.ID] = c
	return nil
}

func (t *CategoryTree) detach(c *Category) {
	siblings := t.children[c.ParentID]
	for i, id := range siblings {
		if id == c.ID {
			t.children[c.ParentID] = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

// Get returns the category with the given ID.
func (t *CategoryTree) Get(id string) (*Category, bool) {
	c, ok := t.nodes[id]
	return c, ok
}

// Parent returns the parent of id, if any.
func (t *CategoryTree) Parent(id string) (*Category, bool) {
	c, ok := t.nodes[id]
	if !ok || c.ParentID == "" {
		return nil, false
	}
	return t.Get(c.ParentID)
}

// Children returns the direct children of id ordered by name.
func (t *CategoryTree) Children(id string) []*Category {
	ids := t.children[id]
	out := make([]*Category, 0, len(ids))
	for _, childID := range ids {
		out = append(out, t.nodes[childID])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindByName looks up a category by normalized name under parentID ("" for roots).
func (t *CategoryTree) FindByName(name, parentID string) (*Category, bool) {
	key := NormalizeCategoryName(name)
	for _, c := range t.nodes {
		if c.Name == key && c.ParentID == parentID {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of categories in the tree.
func (t *CategoryTree) Len() int {
	return len(t.nodes)
}
