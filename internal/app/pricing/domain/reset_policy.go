package domain

import (
	"fmt"
	"strings"
)

// ResetPolicy decides which deal prices an import batch clears.
type ResetPolicy string

const (
	// ResetNone never clears deal prices.
	ResetNone ResetPolicy = "none"
	// ResetAll clears every deal price in the catalog before the rows run.
	ResetAll ResetPolicy = "all"
	// ResetStale clears, after the rows run, deal prices of products whose
	// SKU does not appear in the sheet.
	ResetStale ResetPolicy = "stale"
)

// ParseResetPolicy accepts a policy name in any case; empty means ResetNone.
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch p := ResetPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ResetNone, nil
	case ResetNone, ResetAll, ResetStale:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownResetPolicy, s)
	}
}
