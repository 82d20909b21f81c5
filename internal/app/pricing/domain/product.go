package domain

import (
	"strings"
	"time"
)

// Field names for change tracking
const (
	FieldName          = "name"
	FieldCategoryID    = "category_id"
	FieldSubcategoryID = "subcategory_id"
	FieldMRP           = "mrp"
	FieldSalePrice     = "sale_price"
	FieldIsDealPrice   = "is_deal_price"
	FieldIsActive      = "is_active"
)

// Product is the aggregate root for catalog pricing. Only the price import
// pipeline and the deal price reset mutate it.
type Product struct {
	id            string
	sku           string
	name          string
	categoryID    string
	subcategoryID string // empty when the product sits directly in its category
	mrp           *Money
	salePrice     *Money
	isDealPrice   bool
	isActive      bool
	version       int64
	createdAt     time.Time
	updatedAt     time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// ImportedPrice is the price state an accepted sheet row writes onto a product.
type ImportedPrice struct {
	CategoryID    string
	SubcategoryID string
	MRP           *Money // nil keeps the current MRP
	NetPrice      *Money
}

// NewProduct creates a product that does not exist in the catalog yet.
func NewProduct(id, sku, name, categoryID, subcategoryID string, mrp *Money, now time.Time) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if categoryID == "" {
		return nil, ErrInvalidCategory
	}
	if mrp == nil || !mrp.IsPositive() {
		return nil, ErrInvalidPrice
	}

	p := &Product{
		id:            id,
		sku:           sku,
		name:          name,
		categoryID:    categoryID,
		subcategoryID: subcategoryID,
		mrp:           mrp.Round(),
		isActive:      true,
		createdAt:     now,
		updatedAt:     now,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}

	for _, f := range []string{FieldName, FieldCategoryID, FieldSubcategoryID, FieldMRP, FieldIsActive} {
		p.changes.MarkDirty(f)
	}

	p.recordEvent(&ProductCreatedEvent{
		ProductID:  p.id,
		SKU:        p.sku,
		Name:       p.name,
		CategoryID: p.categoryID,
		MRP:        p.mrp.Copy(),
		CreatedAt:  now,
	})

	return p, nil
}

// ReconstructProduct rebuilds a product loaded from storage.
func ReconstructProduct(
	id, sku, name, categoryID, subcategoryID string,
	mrp, salePrice *Money,
	isDealPrice, isActive bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:            id,
		sku:           sku,
		name:          name,
		categoryID:    categoryID,
		subcategoryID: subcategoryID,
		mrp:           mrp,
		salePrice:     salePrice,
		isDealPrice:   isDealPrice,
		isActive:      isActive,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}
}

// Getters
func (p *Product) ID() string                  { return p.id }
func (p *Product) SKU() string                 { return p.sku }
func (p *Product) Name() string                { return p.name }
func (p *Product) CategoryID() string          { return p.categoryID }
func (p *Product) SubcategoryID() string       { return p.subcategoryID }
func (p *Product) MRP() *Money                 { return p.mrp.Copy() }
func (p *Product) SalePrice() *Money           { return p.salePrice.Copy() }
func (p *Product) IsDealPrice() bool           { return p.isDealPrice }
func (p *Product) IsActive() bool              { return p.isActive }
func (p *Product) Version() int64              { return p.version }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker     { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// IsNew reports whether the product has never been persisted.
func (p *Product) IsNew() bool {
	return p.version == 0
}

// HasDealPrice reports whether a usable deal price is set. A deal flag without
// a sale price is treated as no deal.
func (p *Product) HasDealPrice() bool {
	return p.isDealPrice && p.salePrice != nil
}

// CurrentPrice is the stored price before any promotion: sale price when set,
// otherwise MRP.
func (p *Product) CurrentPrice() *Money {
	if p.salePrice != nil {
		return p.salePrice.Copy()
	}
	return p.mrp.Copy()
}

// ApplyImportedPrice writes an accepted sheet row onto the product and makes
// the net price its deal price. Only fields whose value changes are marked
// dirty. It returns false when nothing changed.
func (p *Product) ApplyImportedPrice(in ImportedPrice, now time.Time) (bool, error) {
	if in.NetPrice == nil || !in.NetPrice.IsPositive() {
		return false, ErrInvalidNetPrice
	}
	if in.MRP != nil && !in.MRP.IsPositive() {
		return false, ErrInvalidPrice
	}
	if in.CategoryID == "" {
		return false, ErrInvalidCategory
	}

	previous := p.CurrentPrice()
	net := in.NetPrice.Round()

	if in.CategoryID != p.categoryID {
		p.categoryID = in.CategoryID
		p.changes.MarkDirty(FieldCategoryID)
	}
	if in.SubcategoryID != p.subcategoryID {
		p.subcategoryID = in.SubcategoryID
		p.changes.MarkDirty(FieldSubcategoryID)
	}
	if in.MRP != nil && !in.MRP.Equals(p.mrp) {
		p.mrp = in.MRP.Round()
		p.changes.MarkDirty(FieldMRP)
	}
	if !EqualMoney(p.salePrice, net) {
		p.salePrice = net
		p.changes.MarkDirty(FieldSalePrice)
	}
	if !p.isDealPrice {
		p.isDealPrice = true
		p.changes.MarkDirty(FieldIsDealPrice)
	}
	if !p.isActive {
		p.isActive = true
		p.changes.MarkDirty(FieldIsActive)
	}

	if !p.changes.HasChanges() {
		return false, nil
	}
	p.updatedAt = now

	p.recordEvent(&DealPriceSetEvent{
		ProductID:     p.id,
		SKU:           p.sku,
		MRP:           p.mrp.Copy(),
		PreviousPrice: previous,
		DealPrice:     net.Copy(),
		SetAt:         now,
	})
	return true, nil
}

// ClearDealPrice drops the deal flag and the sale price. It returns false when
// the product held no deal state.
func (p *Product) ClearDealPrice(now time.Time) bool {
	if !p.isDealPrice && p.salePrice == nil {
		return false
	}
	cleared := p.salePrice.Copy()

	if p.isDealPrice {
		p.isDealPrice = false
		p.changes.MarkDirty(FieldIsDealPrice)
	}
	if p.salePrice != nil {
		p.salePrice = nil
		p.changes.MarkDirty(FieldSalePrice)
	}
	p.updatedAt = now

	p.recordEvent(&DealPriceClearedEvent{
		ProductID:         p.id,
		SKU:               p.sku,
		PreviousDealPrice: cleared,
		ClearedAt:         now,
	})
	return true
}

// MarkPersisted is called by the store after a successful commit: the
// version moves forward and pending changes and events are dropped.
func (p *Product) MarkPersisted() {
	p.version++
	p.changes.Clear()
	p.ClearEvents()
}

func (p *Product) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}
