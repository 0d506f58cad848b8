package usecase

import (
	"log"

	"github.com/supplens/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	EnableDebugLogging bool
}

// CatalogService runs the two-phase batch over a catalog: phase one computes
// every product's absolute scores independently, phase two derives
// peer-relative tier ranks and badges against the completed score set and
// the deduplicated price view. One product's bad data never aborts the rest.
type CatalogService struct {
	scoring            *ScoringService
	tiers              *TierService
	badges             *BadgeService
	prices             *PriceService
	enableDebugLogging bool
}

// NewCatalogService creates a new catalog service
func NewCatalogService(config CatalogServiceConfig) *CatalogService {
	return &CatalogService{
		scoring:            NewScoringService(ScoringConfig{EnableDebugLogging: config.EnableDebugLogging}),
		tiers:              NewTierService(),
		badges:             NewBadgeService(),
		prices:             NewPriceService(),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ScoreCatalog scores, ranks and badges every product. The peer set for the
// relative phase is the supplied product list itself; price records are
// deduplicated once up front so every comparison consumer sees the same
// canonical view.
func (s *CatalogService) ScoreCatalog(
	products []domain.Product,
	ingredients []domain.Ingredient,
	priceRecords []domain.PriceRecord,
) []domain.ScoredProduct {
	index := domain.BuildIngredientIndex(ingredients)
	comparisons := s.prices.Compare(priceRecords)

	// Phase 1: absolute scores, independent per product.
	scores := make([]domain.ScoreResult, len(products))
	for i := range products {
		scores[i] = s.scoring.Score(&products[i], index)
		if s.enableDebugLogging {
			log.Printf("[CATALOG] scored %s: evidence=%d safety=%d overall=%d",
				products[i].ID, scores[i].Evidence, scores[i].Safety, scores[i].Overall)
		}
	}

	// Phase 2: relative ranks and badges over the materialized score set.
	results := make([]domain.ScoredProduct, len(products))
	for i := range products {
		badges, perfect := s.badges.Evaluate(&products[i], scores[i], index, products, comparisons)
		results[i] = domain.ScoredProduct{
			ProductID: products[i].ID,
			Scores:    scores[i],
			Tiers:     s.tiers.Rank(&products[i], scores[i], products, comparisons),
			Badges:    badges,
			Perfect:   perfect,
		}
	}
	return results
}

// ScoreProduct scores a single product without peer comparison: absolute
// scores and absolute tier axes only, relative axes neutral.
func (s *CatalogService) ScoreProduct(product *domain.Product, ingredients []domain.Ingredient) domain.ScoredProduct {
	index := domain.BuildIngredientIndex(ingredients)
	scores := s.scoring.Score(product, index)
	return domain.ScoredProduct{
		ProductID: product.ID,
		Scores:    scores,
		Tiers:     s.tiers.Rank(product, scores, nil, nil),
	}
}
