package domain

import (
	"time"
)

// PromotionScope says what a promotion targets.
type PromotionScope string

const (
	ScopeProduct  PromotionScope = "product"
	ScopeCategory PromotionScope = "category"
)

// Promotion is a time-bound discount attached to one product or one category.
// Promotion records are owned by catalog management; this service only reads them.
type Promotion struct {
	ID        string
	Scope     PromotionScope
	TargetID  string // product ID or category ID, depending on Scope
	Rule      DiscountRule
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPromotion validates the window and builds a Promotion.
func NewPromotion(
	id string,
	scope PromotionScope,
	targetID string,
	rule DiscountRule,
	startDate, endDate time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Promotion, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidPromotionWindow
	}
	return &Promotion{
		ID:        id,
		Scope:     scope,
		TargetID:  targetID,
		Rule:      rule,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  isActive,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// IsValidAt reports whether the promotion is active and t lies inside the
// window. Both ends are inclusive.
func (p *Promotion) IsValidAt(t time.Time) bool {
	return p.IsActive && !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// Apply returns the discounted price for base.
func (p *Promotion) Apply(base *Money) *Money {
	return p.Rule.Apply(base)
}

// recency is the timestamp used to break value ties: creation time for
// product promotions, last update for category campaigns.
func (p *Promotion) recency() time.Time {
	if p.Scope == ScopeCategory {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// outranks reports whether p should win over other within the same scope:
// higher discount value first, then the more recent record, then the larger
// ID so the choice is deterministic.
func (p *Promotion) outranks(other *Promotion) bool {
	if c := p.Rule.Value().Cmp(other.Rule.Value()); c != 0 {
		return c > 0
	}
	if !p.recency().Equal(other.recency()) {
		return p.recency().After(other.recency())
	}
	return p.ID > other.ID
}

// BestPromotion returns the winning promotion among candidates valid at t, or
// nil when none is valid. Candidates that are inactive or out of window are
// ignored even if the store already filtered them.
func BestPromotion(candidates []*Promotion, at time.Time) *Promotion {
	var best *Promotion
	for _, p := range candidates {
		if p == nil || !p.IsValidAt(at) {
			continue
		}
		if best == nil || p.outranks(best) {
			best = p
		}
	}
	return best
}
