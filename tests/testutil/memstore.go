package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/committer"
)

type productRow struct {
	id, sku, name             string
	categoryID, subcategoryID string
	mrp, salePrice            *domain.Money
	isDealPrice, isActive     bool
	version                   int64
	createdAt, updatedAt      time.Time
}

func (r productRow) product() *domain.Product {
	return domain.ReconstructProduct(
		r.id, r.sku, r.name, r.categoryID, r.subcategoryID,
		r.mrp.Copy(), r.salePrice.Copy(),
		r.isDealPrice, r.isActive,
		r.version, r.createdAt, r.updatedAt,
	)
}

// MemStore is an in-memory implementation of every pricing store contract.
// It keeps value snapshots, so aggregates handed out are independent of the
// stored state until saved.
type MemStore struct {
	mu sync.Mutex

	now        func() time.Time
	categories map[string]*domain.Category
	products   map[string]productRow // keyed by SKU
	promotions []*domain.Promotion
	uploads    map[string]domain.PriceUpload
	skipped    []*domain.SkippedPriceImport
	imported   []*domain.ImportedProduct
	logs       []*domain.ImportLog
	events     []*contracts.EventDTO

	// SaveErrors makes SaveProduct fail for the given SKUs.
	SaveErrors map[string]error
	// SkipError makes RecordSkipped fail.
	SkipError error
	// Saves counts successful SaveProduct calls.
	Saves int
}

// NewMemStore creates an empty store stamping rows with now.
func NewMemStore(now func() time.Time) *MemStore {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &MemStore{
		now:        now,
		categories: make(map[string]*domain.Category),
		products:   make(map[string]productRow),
		uploads:    make(map[string]domain.PriceUpload),
		SaveErrors: make(map[string]error),
	}
}

var (
	_ contracts.PromotionStore   = (*MemStore)(nil)
	_ contracts.CatalogStore     = (*MemStore)(nil)
	_ contracts.AuditStore       = (*MemStore)(nil)
	_ contracts.UploadRepository = (*MemStore)(nil)
	_ contracts.ImportReadModel  = (*MemStore)(nil)
	_ contracts.EventsReadModel  = (*MemStore)(nil)
)

// AddPromotion seeds a promotion.
func (s *MemStore) AddPromotion(p *domain.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promotions = append(s.promotions, p)
}

// FindProductPromotions implements contracts.PromotionStore.
func (s *MemStore) FindProductPromotions(_ context.Context, productID string, activeAt time.Time) ([]*domain.Promotion, error) {
	return s.findPromotions(domain.ScopeProduct, activeAt, func(target string) bool { return target == productID }), nil
}

// FindCategoryPromotions implements contracts.PromotionStore.
func (s *MemStore) FindCategoryPromotions(_ context.Context, categoryID string, activeAt time.Time) ([]*domain.Promotion, error) {
	return s.findPromotions(domain.ScopeCategory, activeAt, func(target string) bool { return target == categoryID }), nil
}

// FindCategoryPromotionsIn implements contracts.PromotionStore.
func (s *MemStore) FindCategoryPromotionsIn(_ context.Context, categoryIDs []string, activeAt time.Time) ([]*domain.Promotion, error) {
	in := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		in[id] = true
	}
	return s.findPromotions(domain.ScopeCategory, activeAt, func(target string) bool { return in[target] }), nil
}

func (s *MemStore) findPromotions(scope domain.PromotionScope, at time.Time, match func(string) bool) []*domain.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Promotion
	for _, p := range s.promotions {
		if p.Scope == scope && match(p.TargetID) && p.IsValidAt(at) {
			out = append(out, p)
		}
	}
	return out
}

// AddCategory seeds a category and returns it.
func (s *MemStore) AddCategory(name, parentID string) *domain.Category {
	c, _ := s.GetOrCreateCategory(context.Background(), name, parentID)
	return c
}

// GetCategory implements contracts.CategoryReader.
func (s *MemStore) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

// ChildCategories implements contracts.CategoryReader.
func (s *MemStore) ChildCategories(_ context.Context, parentID string) ([]*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Category
	for _, c := range s.categories {
		if c.ParentID == parentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadCategoryTree implements contracts.CatalogStore.
func (s *MemStore) LoadCategoryTree(_ context.Context) (*domain.CategoryTree, error) {
	s.mu.Lock()
	pending := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := *c
		pending = append(pending, &cp)
	}
	s.mu.Unlock()

	tree := domain.NewCategoryTree()
	for len(pending) > 0 {
		var next []*domain.Category
		for _, c := range pending {
			if err := tree.Add(c); err != nil {
				next = append(next, c)
			}
		}
		if len(next) == len(pending) {
			return nil, domain.ErrCategoryCycle
		}
		pending = next
	}
	return tree, nil
}

// GetOrCreateCategory implements contracts.CatalogStore.
func (s *MemStore) GetOrCreateCategory(_ context.Context, name, parentID string) (*domain.Category, error) {
	key := domain.NormalizeCategoryName(name)
	if key == "" {
		return nil, domain.ErrEmptyCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == key && c.ParentID == parentID {
			cp := *c
			return &cp, nil
		}
	}
	c := &domain.Category{ID: uuid.New().String(), Name: key, ParentID: parentID, CreatedAt: s.now()}
	s.categories[c.ID] = c
	cp := *c
	return &cp, nil
}

// CategoryCount returns the number of stored categories.
func (s *MemStore) CategoryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.categories)
}

// GetProductBySKU implements contracts.CatalogStore.
func (s *MemStore) GetProductBySKU(_ context.Context, sku string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.products[sku]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return row.product(), nil
}

// GetOrCreateProduct implements contracts.CatalogStore. New products are
// returned unsaved.
func (s *MemStore) GetOrCreateProduct(ctx context.Context, sku string, defaults contracts.ProductDefaults) (*domain.Product, bool, error) {
	p, err := s.GetProductBySKU(ctx, sku)
	if err == nil {
		return p, false, nil
	}
	p, err = domain.NewProduct(uuid.New().String(), sku, defaults.Name, defaults.CategoryID, defaults.SubcategoryID, defaults.MRP, s.now())
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// SaveProduct implements contracts.CatalogStore with a version check.
func (s *MemStore) SaveProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.SaveErrors[p.SKU()]; err != nil {
		return err
	}
	if !p.Changes().HasChanges() && len(p.DomainEvents()) == 0 {
		return nil
	}

	current, exists := s.products[p.SKU()]
	if p.IsNew() && exists {
		return committer.ErrVersionConflict
	}
	if !p.IsNew() && (!exists || current.version != p.Version()) {
		return committer.ErrVersionConflict
	}

	s.products[p.SKU()] = productRow{
		id:            p.ID(),
		sku:           p.SKU(),
		name:          p.Name(),
		categoryID:    p.CategoryID(),
		subcategoryID: p.SubcategoryID(),
		mrp:           p.MRP(),
		salePrice:     p.SalePrice(),
		isDealPrice:   p.IsDealPrice(),
		isActive:      p.IsActive(),
		version:       p.Version() + 1,
		createdAt:     p.CreatedAt(),
		updatedAt:     p.UpdatedAt(),
	}
	for _, ev := range p.DomainEvents() {
		payload, _ := json.Marshal(ev)
		s.events = append(s.events, &contracts.EventDTO{
			EventID:     uuid.New().String(),
			EventType:   ev.EventType(),
			AggregateID: ev.AggregateID(),
			Payload:     string(payload),
			Status:      "pending",
			CreatedAt:   s.now(),
		})
	}
	s.Saves++
	p.MarkPersisted()
	return nil
}

// PutProduct stores p as-is, bypassing version checks. The stored version is
// at least 1 so the product reads back as persisted.
func (s *MemStore) PutProduct(p *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	version := p.Version()
	if version < 1 {
		version = 1
	}
	s.products[p.SKU()] = productRow{
		id:            p.ID(),
		sku:           p.SKU(),
		name:          p.Name(),
		categoryID:    p.CategoryID(),
		subcategoryID: p.SubcategoryID(),
		mrp:           p.MRP(),
		salePrice:     p.SalePrice(),
		isDealPrice:   p.IsDealPrice(),
		isActive:      p.IsActive(),
		version:       version,
		createdAt:     p.CreatedAt(),
		updatedAt:     p.UpdatedAt(),
	}
}

// ListDealPriceProducts implements contracts.CatalogStore.
func (s *MemStore) ListDealPriceProducts(_ context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Product
	for _, row := range s.products {
		if row.isDealPrice || row.salePrice != nil {
			out = append(out, row.product())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU() < out[j].SKU() })
	return out, nil
}

// RecordSkipped implements contracts.AuditStore.
func (s *MemStore) RecordSkipped(_ context.Context, rec *domain.SkippedPriceImport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SkipError != nil {
		return s.SkipError
	}
	s.skipped = append(s.skipped, rec)
	return nil
}

// RecordImported implements contracts.AuditStore.
func (s *MemStore) RecordImported(_ context.Context, rec *domain.ImportedProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imported = append(s.imported, rec)
	return nil
}

// RecordImportLog implements contracts.AuditStore.
func (s *MemStore) RecordImportLog(_ context.Context, rec *domain.ImportLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, rec)
	return nil
}

// Create implements contracts.UploadRepository.
func (s *MemStore) Create(_ context.Context, u *domain.PriceUpload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[u.ID] = *u
	return nil
}

// Update implements contracts.UploadRepository.
func (s *MemStore) Update(_ context.Context, u *domain.PriceUpload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.uploads[u.ID]; !ok {
		return domain.ErrUploadNotFound
	}
	s.uploads[u.ID] = *u
	return nil
}

// Get implements contracts.UploadRepository.
func (s *MemStore) Get(_ context.Context, id string) (*domain.PriceUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	if !ok {
		return nil, domain.ErrUploadNotFound
	}
	return &u, nil
}

// ListSkipped implements contracts.ImportReadModel.
func (s *MemStore) ListSkipped(_ context.Context, uploadID string) ([]*domain.SkippedPriceImport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.SkippedPriceImport
	for _, r := range s.skipped {
		if r.UploadID == uploadID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RowNumber < out[j].RowNumber })
	return out, nil
}

// ListImported implements contracts.ImportReadModel.
func (s *MemStore) ListImported(_ context.Context, uploadID string) ([]*domain.ImportedProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ImportedProduct
	for _, r := range s.imported {
		if r.UploadID == uploadID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListImportLogs implements contracts.ImportReadModel.
func (s *MemStore) ListImportLogs(_ context.Context, limit int) ([]*domain.ImportLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.ImportLog, 0, len(s.logs))
	for i := len(s.logs) - 1; i >= 0; i-- {
		out = append(out, s.logs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListEvents implements contracts.EventsReadModel.
func (s *MemStore) ListEvents(_ context.Context, f contracts.EventFilter) ([]*contracts.EventDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*contracts.EventDTO
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if f.EventType != "" && e.EventType != f.EventType {
			continue
		}
		if f.AggregateID != "" && e.AggregateID != f.AggregateID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// Skipped returns every recorded skip in insertion order.
func (s *MemStore) Skipped() []*domain.SkippedPriceImport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.SkippedPriceImport(nil), s.skipped...)
}

// Imported returns every recorded import in insertion order.
func (s *MemStore) Imported() []*domain.ImportedProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.ImportedProduct(nil), s.imported...)
}

// Logs returns every batch summary in insertion order.
func (s *MemStore) Logs() []*domain.ImportLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.ImportLog(nil), s.logs...)
}
