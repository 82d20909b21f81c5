package domain

// ResolutionTier identifies which step of the promotion chain matched.
type ResolutionTier int

const (
	TierNone ResolutionTier = iota
	TierProduct
	TierCategory
	TierChildCategory
	TierParentCategory
)

func (t ResolutionTier) String() string {
	switch t {
	case TierProduct:
		return "product"
	case TierCategory:
		return "category"
	case TierChildCategory:
		return "child_category"
	case TierParentCategory:
		return "parent_category"
	default:
		return "none"
	}
}

// Resolution is the resolver's answer: the winning promotion and its tier.
// Promotion is nil when Tier is TierNone.
type Resolution struct {
	Promotion *Promotion
	Tier      ResolutionTier
}

// Found reports whether a promotion applies.
func (r Resolution) Found() bool {
	return r.Promotion != nil
}

// PriceSource says which mechanism produced the final price.
type PriceSource string

const (
	SourceDeal              PriceSource = "deal"
	SourceProductPromotion  PriceSource = "product_promotion"
	SourceCategoryPromotion PriceSource = "category_promotion"
	SourceNone              PriceSource = "none"
)

// PriceResult is the authoritative price of a product at one instant.
// FinalPrice <= MRP and Discount >= 0 always hold.
type PriceResult struct {
	MRP        *Money
	FinalPrice *Money
	Discount   *Money
	Promotion  *Promotion
	Tier       ResolutionTier
	Source     PriceSource
}

// Label is the badge shown next to a discounted price.
func (r PriceResult) Label() string {
	switch r.Source {
	case SourceDeal:
		return "Special Promotion"
	case SourceProductPromotion:
		return "Product Promotion"
	case SourceCategoryPromotion:
		return "Category Promotion"
	default:
		return ""
	}
}

// ShowMRPStrike reports whether the MRP should be displayed struck through.
func (r PriceResult) ShowMRPStrike() bool {
	return r.Discount != nil && r.Discount.IsPositive()
}
