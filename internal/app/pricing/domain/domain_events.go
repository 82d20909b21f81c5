package domain

import "time"

// DomainEvent is implemented by every event the product aggregate records.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ProductCreatedEvent is emitted when an import creates a product that was not
// in the catalog.
type ProductCreatedEvent struct {
	ProductID  string    `json:"product_id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	MRP        *Money    `json:"mrp"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e *ProductCreatedEvent) EventType() string   { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string { return e.ProductID }

// DealPriceSetEvent is emitted when an accepted sheet row sets a deal price.
type DealPriceSetEvent struct {
	ProductID     string    `json:"product_id"`
	SKU           string    `json:"sku"`
	MRP           *Money    `json:"mrp"`
	PreviousPrice *Money    `json:"previous_price"`
	DealPrice     *Money    `json:"deal_price"`
	SetAt         time.Time `json:"set_at"`
}

func (e *DealPriceSetEvent) EventType() string   { return "product.deal_price_set" }
func (e *DealPriceSetEvent) AggregateID() string { return e.ProductID }

// DealPriceClearedEvent is emitted when a deal price reset removes an override.
type DealPriceClearedEvent struct {
	ProductID         string    `json:"product_id"`
	SKU               string    `json:"sku"`
	PreviousDealPrice *Money    `json:"previous_deal_price,omitempty"`
	ClearedAt         time.Time `json:"cleared_at"`
}

func (e *DealPriceClearedEvent) EventType() string   { return "product.deal_price_cleared" }
func (e *DealPriceClearedEvent) AggregateID() string { return e.ProductID }
