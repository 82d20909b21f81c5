package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// toNumeric maps optional money onto a NUMERIC column.
func toNumeric(m *domain.Money) spanner.NullNumeric {
	if m == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *m.Rat(), Valid: true}
}

// fromNumeric maps a NUMERIC column back to optional money.
func fromNumeric(n spanner.NullNumeric) *domain.Money {
	if !n.Valid {
		return nil
	}
	return domain.NewMoneyFromRat(&n.Numeric)
}

func toNullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func fromNullString(s spanner.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.StringVal
}
