package import_prices

import (
	"fmt"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// Skip suggestions shown to the uploader.
const (
	SuggestAddColumn       = "Fill in the missing column and upload the row again"
	SuggestFixPrice        = "Use a positive number such as 1299.00"
	SuggestCheckSKU        = "Check the SKU or import the product with price validation turned off"
	SuggestRaisePrice      = "Increase Net Price to match or exceed current sale price"
	SuggestChangePrice     = "Change price to create a new update"
	SuggestAddMRP          = "Add an MRP so the product can be created"
	SuggestCheckFormat     = "Check CSV format or values"
	ReasonSKUNotFound      = "SKU not found in catalog"
	ReasonPriceUnchanged   = "price unchanged"
	ReasonNoNetPrice       = "no net price supplied"
	ReasonMRPRequired      = "MRP is required to create a new product"
	reasonMissingColumnFmt = "missing required column: %s"
)

// RowRejection is a deliberate skip of one sheet row. Any other error met
// while processing a row is recorded as an unexpected failure.
type RowRejection struct {
	Reason           string
	Suggestion       string
	CurrentSalePrice *domain.Money
}

func (r *RowRejection) Error() string {
	return r.Reason
}

func reject(reason, suggestion string) *RowRejection {
	return &RowRejection{Reason: reason, Suggestion: suggestion}
}

func missingColumn(col string) *RowRejection {
	return reject(fmt.Sprintf(reasonMissingColumnFmt, col), SuggestAddColumn)
}

func invalidPrice(col, raw string, err error) *RowRejection {
	return reject(fmt.Sprintf("invalid %s %q: %v", col, raw, err), SuggestFixPrice)
}

func undercut(net, current *domain.Money) *RowRejection {
	return &RowRejection{
		Reason:           fmt.Sprintf("CSV Net Price (%s) is lower than current sale price (%s)", net, current),
		Suggestion:       SuggestRaisePrice,
		CurrentSalePrice: current,
	}
}

// parsedRow is a sheet row after column checks and number parsing.
type parsedRow struct {
	number      int
	sku         string
	name        string
	category    string
	subcategory string
	mrp         *domain.Money
	netPrice    *domain.Money
}
