package usecase

import (
	"github.com/supplens/backend/internal/domain"
)

// Absolute rank thresholds, pinned by the test suite.
const (
	tierThresholdS = 90
	tierThresholdA = 80
	tierThresholdB = 70
	tierThresholdC = 60
)

// Relative rank percentile boundaries: fraction of peers strictly better.
const (
	tierPercentileA = 0.25
	tierPercentileB = 0.50
	tierPercentileC = 0.75
)

// TierService derives per-axis letter ranks. Absolute axes (evidence,
// safety) classify a numeric score against fixed thresholds; relative axes
// (price, cost-effectiveness, content) classify the product's standing
// inside an explicitly supplied peer set. Nothing here reads ambient state.
type TierService struct {
	prices *PriceService
}

// NewTierService creates a new tier service
func NewTierService() *TierService {
	return &TierService{prices: NewPriceService()}
}

// AbsoluteRank classifies a 0-100 score: >=90 S, >=80 A, >=70 B, >=60 C,
// else D.
func AbsoluteRank(score int) domain.TierRank {
	switch {
	case score >= tierThresholdS:
		return domain.TierS
	case score >= tierThresholdA:
		return domain.TierA
	case score >= tierThresholdB:
		return domain.TierB
	case score >= tierThresholdC:
		return domain.TierC
	default:
		return domain.TierD
	}
}

// Rank derives all five axis ranks plus the overall rank for one product.
// Overall is the worst of the five axes: an S overall requires S on every
// axis, and a single weak axis degrades the product predictably.
func (s *TierService) Rank(
	product *domain.Product,
	scores domain.ScoreResult,
	peers []domain.Product,
	comparisons []domain.PriceComparison,
) domain.TierRatings {
	ratings := domain.TierRatings{
		Price:             s.PriceRank(product, peers, comparisons),
		CostEffectiveness: s.ValueRank(product, peers),
		Content:           s.ContentRank(product, peers),
		Evidence:          AbsoluteRank(scores.Evidence),
		Safety:            AbsoluteRank(scores.Safety),
	}
	ratings.Overall = worstRank(
		ratings.Price, ratings.CostEffectiveness, ratings.Content,
		ratings.Evidence, ratings.Safety,
	)
	return ratings
}

// PriceRank ranks the product's price against directly-comparable records
// (same canonical code in the deduplicated price view) when they exist, and
// against all in-stock peers otherwise. Lower is better.
func (s *TierService) PriceRank(product *domain.Product, peers []domain.Product, comparisons []domain.PriceComparison) domain.TierRank {
	var pool []float64

	if product.CanonicalCode != "" {
		for i := range comparisons {
			if comparisons[i].CanonicalCode != product.CanonicalCode {
				continue
			}
			for _, record := range comparisons[i].Records {
				pool = append(pool, record.PriceJPY)
			}
		}
	}

	if len(pool) == 0 {
		for i := range peers {
			if peers[i].ID == product.ID || !peers[i].InStock {
				continue
			}
			pool = append(pool, peers[i].PriceJPY)
		}
	}

	return relativeRank(product.PriceJPY, pool, lowerIsBetter)
}

// ContentRank ranks the product's primary-ingredient amount against peers
// declaring a positive amount for the same ingredient. Higher is better; a
// product with no positive primary amount ranks D outright.
func (s *TierService) ContentRank(product *domain.Product, peers []domain.Product) domain.TierRank {
	primary := product.PrimaryLine()
	if primary == nil || primary.AmountMgPerServing <= 0 {
		return domain.TierD
	}

	var pool []float64
	for i := range peers {
		if peers[i].ID == product.ID {
			continue
		}
		for _, line := range peers[i].Ingredients {
			if line.IngredientID == primary.IngredientID && line.AmountMgPerServing > 0 {
				pool = append(pool, line.AmountMgPerServing)
			}
		}
	}

	return relativeRank(primary.AmountMgPerServing, pool, higherIsBetter)
}

// ValueRank ranks cost per mg of the primary ingredient across the container
// (price / (amount * servingsPerContainer)). Lower is better; peers without
// a computable value are excluded, and a product without one ranks D.
func (s *TierService) ValueRank(product *domain.Product, peers []domain.Product) domain.TierRank {
	value, ok := costPerMg(product)
	if !ok {
		return domain.TierD
	}

	var pool []float64
	for i := range peers {
		if peers[i].ID == product.ID {
			continue
		}
		if peerValue, ok := costPerMg(&peers[i]); ok {
			pool = append(pool, peerValue)
		}
	}

	return relativeRank(value, pool, lowerIsBetter)
}

// costPerMg computes the cost-per-unit-mass of the primary ingredient.
// Returns false when price, amount or servings make the value meaningless.
func costPerMg(product *domain.Product) (float64, bool) {
	primary := product.PrimaryLine()
	if primary == nil || primary.AmountMgPerServing <= 0 {
		return 0, false
	}
	if product.PriceJPY <= 0 || product.ServingsPerContainer <= 0 {
		return 0, false
	}
	return product.PriceJPY / (primary.AmountMgPerServing * float64(product.ServingsPerContainer)), true
}

type rankDirection bool

const (
	lowerIsBetter  rankDirection = true
	higherIsBetter rankDirection = false
)

// relativeRank classifies value inside pool: S when no peer is strictly
// better, else by the fraction of peers strictly better (<25% A, <50% B,
// <75% C, else D). An empty pool is a degenerate comparison and ranks the
// neutral C rather than rewarding or punishing a product with no peers.
func relativeRank(value float64, pool []float64, direction rankDirection) domain.TierRank {
	if len(pool) == 0 {
		return domain.TierC
	}

	better := 0
	for _, peer := range pool {
		if direction == lowerIsBetter && peer < value {
			better++
		}
		if direction == higherIsBetter && peer > value {
			better++
		}
	}

	if better == 0 {
		return domain.TierS
	}

	fraction := float64(better) / float64(len(pool))
	switch {
	case fraction < tierPercentileA:
		return domain.TierA
	case fraction < tierPercentileB:
		return domain.TierB
	case fraction < tierPercentileC:
		return domain.TierC
	default:
		return domain.TierD
	}
}

func worstRank(ranks ...domain.TierRank) domain.TierRank {
	worst := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Worse(worst) {
			worst = rank
		}
	}
	return worst
}
