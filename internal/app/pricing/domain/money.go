package domain

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// MinorUnits is the number of fractional digits every stored or displayed
// price is rounded to.
const MinorUnits = 2

// Money is an immutable decimal amount. All arithmetic returns a new value.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a minor-unit count, e.g. NewMoney(9999) is 99.99.
func NewMoney(minor int64) *Money {
	return &Money{amount: decimal.New(minor, -MinorUnits)}
}

// NewMoneyFromDecimal wraps a decimal value.
func NewMoneyFromDecimal(d decimal.Decimal) *Money {
	return &Money{amount: d}
}

// NewMoneyFromRat converts a Spanner NUMERIC value. A nil rat is zero.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{amount: decimal.NewFromBigRat(rat, 9)}
}

// ParseMoney parses a plain decimal string such as "149.50".
func ParseMoney(s string) (*Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	return &Money{amount: d}, nil
}

// MustParseMoney is ParseMoney for literals known to be valid.
func MustParseMoney(s string) *Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseCurrency parses a price cell from an uploaded sheet. Currency symbols,
// thousands separators and whitespace are stripped; the result is rounded to
// MinorUnits. Anything else that does not parse is an error.
func ParseCurrency(s string) (*Money, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	return &Money{amount: d.Round(MinorUnits)}, nil
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal value.
func (m *Money) Decimal() decimal.Decimal {
	return m.amount
}

// Rat returns the value as a big.Rat for Spanner NUMERIC columns.
func (m *Money) Rat() *big.Rat {
	return m.amount.Rat()
}

// Add returns m + other.
func (m *Money) Add(other *Money) *Money {
	return &Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns m - other.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{amount: m.amount.Sub(other.amount)}
}

// Percent returns pct percent of m, unrounded.
func (m *Money) Percent(pct decimal.Decimal) *Money {
	return &Money{amount: m.amount.Mul(pct).Div(decimal.NewFromInt(100))}
}

// Round returns m rounded half away from zero to MinorUnits places.
func (m *Money) Round() *Money {
	return &Money{amount: m.amount.Round(MinorUnits)}
}

// ClampNonNegative returns m, or zero if m is negative.
func (m *Money) ClampNonNegative() *Money {
	if m.IsNegative() {
		return Zero()
	}
	return m
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// LessThan returns true if m < other.
func (m *Money) LessThan(other *Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan returns true if m > other.
func (m *Money) GreaterThan(other *Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equals compares by value, so 99 equals 99.00.
func (m *Money) Equals(other *Money) bool {
	return m.amount.Equal(other.amount)
}

// Min returns the smaller of m and other.
func (m *Money) Min(other *Money) *Money {
	if other.LessThan(m) {
		return other
	}
	return m
}

// Float64 returns an approximate float64 (display only).
func (m *Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats with exactly MinorUnits fractional digits.
func (m *Money) String() string {
	return m.amount.StringFixed(MinorUnits)
}

// MarshalJSON renders money as a fixed two-place JSON string.
func (m *Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string or number.
func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(strings.Trim(string(data), `"`))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedAmount, data)
	}
	m.amount = d
	return nil
}

// Copy returns an equal, independent value. Copying nil yields nil.
func (m *Money) Copy() *Money {
	if m == nil {
		return nil
	}
	return &Money{amount: m.amount}
}

// EqualMoney reports whether two optional amounts are equal; two nils are equal.
func EqualMoney(a, b *Money) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}
