package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountKind tags the variant of a DiscountRule.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFlat       DiscountKind = "flat"
)

// ParseDiscountKind accepts either case, since stored records have used both.
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch DiscountKind(strings.ToLower(strings.TrimSpace(s))) {
	case DiscountPercentage:
		return DiscountPercentage, nil
	case DiscountFlat:
		return DiscountFlat, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDiscountKind, s)
	}
}

// DiscountRule is a tagged variant: a percentage off, or a flat amount off.
type DiscountRule struct {
	kind  DiscountKind
	value decimal.Decimal
}

// NewDiscountRule validates kind and value. Negative values are rejected
// because they would raise the price above the base.
func NewDiscountRule(kind DiscountKind, value decimal.Decimal) (DiscountRule, error) {
	if kind != DiscountPercentage && kind != DiscountFlat {
		return DiscountRule{}, fmt.Errorf("%w: %q", ErrUnknownDiscountKind, kind)
	}
	if value.IsNegative() {
		return DiscountRule{}, ErrNegativeDiscount
	}
	return DiscountRule{kind: kind, value: value}, nil
}

// Kind returns the variant tag.
func (r DiscountRule) Kind() DiscountKind { return r.kind }

// Value returns the raw discount value (percent points or currency amount).
func (r DiscountRule) Value() decimal.Decimal { return r.value }

// Apply returns the discounted price, never negative, rounded to MinorUnits.
//
//	percentage: base - base*value/100
//	flat:       base - value
func (r DiscountRule) Apply(base *Money) *Money {
	var discounted *Money
	switch r.kind {
	case DiscountPercentage:
		discounted = base.Subtract(base.Percent(r.value))
	case DiscountFlat:
		discounted = base.Subtract(NewMoneyFromDecimal(r.value))
	default:
		discounted = base.Copy()
	}
	return discounted.ClampNonNegative().Round()
}

// String renders the rule for reasons and logs, e.g. "10% off" or "100.00 off".
func (r DiscountRule) String() string {
	if r.kind == DiscountPercentage {
		return r.value.String() + "% off"
	}
	return r.value.StringFixed(MinorUnits) + " off"
}

// ApplyDiscount is the discount calculator: given a base price, a discount
// kind and a value, it returns the discounted price. Malformed input (unknown
// kind, negative value) is returned as an error rather than coerced.
func ApplyDiscount(base *Money, kind DiscountKind, value decimal.Decimal) (*Money, error) {
	if base == nil {
		return nil, ErrMalformedAmount
	}
	rule, err := NewDiscountRule(kind, value)
	if err != nil {
		return nil, err
	}
	return rule.Apply(base), nil
}
