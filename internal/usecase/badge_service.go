package usecase

import (
	"github.com/supplens/backend/internal/domain"
)

// bestValueTolerance is the float comparison slack for cost-per-mg ties.
const bestValueTolerance = 0.01

// highSafetyThreshold is the safety score needed for the high-safety badge.
const highSafetyThreshold = 90

// BadgeService awards merit badges by applying five independent boolean
// rules over a product and its peer set. A product earning all five is
// flagged perfect.
type BadgeService struct {
	prices *PriceService
}

// NewBadgeService creates a new badge service
func NewBadgeService() *BadgeService {
	return &BadgeService{prices: NewPriceService()}
}

// Evaluate applies every badge predicate in award order and reports whether
// the full set was earned. Award order is fixed; the perfect flag is a set
// property and does not depend on it.
func (s *BadgeService) Evaluate(
	product *domain.Product,
	scores domain.ScoreResult,
	index domain.IngredientIndex,
	peers []domain.Product,
	comparisons []domain.PriceComparison,
) ([]domain.Badge, bool) {
	var badges []domain.Badge

	if s.IsLowestPrice(product, peers, comparisons) {
		badges = append(badges, domain.BadgeLowestPrice)
	}
	if s.IsHighestContent(product, peers) {
		badges = append(badges, domain.BadgeHighestContent)
	}
	if s.IsBestValue(product, peers) {
		badges = append(badges, domain.BadgeBestValue)
	}
	if s.IsEvidenceS(product, index) {
		badges = append(badges, domain.BadgeEvidenceS)
	}
	if s.IsHighSafety(scores) {
		badges = append(badges, domain.BadgeHighSafety)
	}

	return badges, len(badges) == len(domain.AllBadges)
}

// IsLowestPrice reports whether the product's price equals the minimum
// within its own multi-source price records, or within the full in-stock
// peer set when it has no records.
func (s *BadgeService) IsLowestPrice(product *domain.Product, peers []domain.Product, comparisons []domain.PriceComparison) bool {
	if product.CanonicalCode != "" {
		if lowest, ok := s.prices.LowestPrice(comparisons, product.CanonicalCode); ok {
			return product.PriceJPY <= lowest
		}
	}

	for i := range peers {
		if peers[i].ID == product.ID || !peers[i].InStock {
			continue
		}
		if peers[i].PriceJPY < product.PriceJPY {
			return false
		}
	}
	return true
}

// IsHighestContent reports whether the product's primary-ingredient amount
// equals the maximum among peers declaring a positive amount for the same
// ingredient. A product with a zero or absent amount never earns it.
func (s *BadgeService) IsHighestContent(product *domain.Product, peers []domain.Product) bool {
	primary := product.PrimaryLine()
	if primary == nil || primary.AmountMgPerServing <= 0 {
		return false
	}

	for i := range peers {
		if peers[i].ID == product.ID {
			continue
		}
		for _, line := range peers[i].Ingredients {
			if line.IngredientID == primary.IngredientID && line.AmountMgPerServing > primary.AmountMgPerServing {
				return false
			}
		}
	}
	return true
}

// IsBestValue reports whether the product's cost-per-unit-mass is within
// tolerance of the minimum among peers with a computable value. Products
// with zero amount or zero servings are excluded and cannot earn it.
func (s *BadgeService) IsBestValue(product *domain.Product, peers []domain.Product) bool {
	value, ok := costPerMg(product)
	if !ok {
		return false
	}

	min := value
	for i := range peers {
		if peers[i].ID == product.ID {
			continue
		}
		if peerValue, ok := costPerMg(&peers[i]); ok && peerValue < min {
			min = peerValue
		}
	}
	return value-min < bestValueTolerance
}

// IsEvidenceS reports whether the product's primary ingredient carries an S
// evidence level.
func (s *BadgeService) IsEvidenceS(product *domain.Product, index domain.IngredientIndex) bool {
	primary := product.PrimaryLine()
	if primary == nil {
		return false
	}
	ingredient, ok := index[primary.IngredientID]
	return ok && ingredient.EvidenceLevel == domain.EvidenceS
}

// IsHighSafety reports whether the product's composition-weighted safety
// score clears the badge threshold.
func (s *BadgeService) IsHighSafety(scores domain.ScoreResult) bool {
	return scores.Safety >= highSafetyThreshold
}
