package domain

// IngredientLine is one row of a product's declared composition.
// Uniqueness of IngredientID within a product is an upstream invariant the
// engine tolerates being violated: duplicate lines are summed as-is into the
// total mass (see the scoring service) pending the data-hygiene pass.
type IngredientLine struct {
	IngredientID       string  `json:"ingredientId"`
	AmountMgPerServing float64 `json:"amountMgPerServing"`
	IsPrimary          bool    `json:"isPrimary"`
}

// Product is a single retail listing of a supplement.
type Product struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Ingredients          []IngredientLine `json:"ingredients"`
	PriceJPY             float64          `json:"priceJpy"`
	ServingsPerContainer int              `json:"servingsPerContainer"`
	ServingsPerDay       int              `json:"servingsPerDay"`
	Source               string           `json:"source"` // retailer tag
	InStock              bool             `json:"inStock"`

	// CanonicalCode (JAN/barcode) identifies the same physical item across
	// retailers. Empty when the listing has no known barcode.
	CanonicalCode string `json:"canonicalCode,omitempty"`
}

// PrimaryLine returns the line flagged primary, falling back to the line
// with the largest declared amount, then to the first line. Returns nil for
// products with no ingredient lines.
func (p *Product) PrimaryLine() *IngredientLine {
	if len(p.Ingredients) == 0 {
		return nil
	}
	best := -1
	for i := range p.Ingredients {
		if p.Ingredients[i].IsPrimary {
			return &p.Ingredients[i]
		}
		if best < 0 || p.Ingredients[i].AmountMgPerServing > p.Ingredients[best].AmountMgPerServing {
			best = i
		}
	}
	return &p.Ingredients[best]
}
