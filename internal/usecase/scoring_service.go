package usecase

import (
	"log"
	"math"

	"github.com/supplens/backend/internal/domain"
)

// Base score mapping for evidence levels.
var evidenceScores = map[domain.EvidenceLevel]float64{
	domain.EvidenceS: 95,
	domain.EvidenceA: 85,
	domain.EvidenceB: 70,
	domain.EvidenceC: 55,
	domain.EvidenceD: 40,
}

// Base score mapping for safety levels.
var safetyScores = map[domain.SafetyLevel]float64{
	domain.SafetyS: 95,
	domain.SafetyA: 85,
	domain.SafetyB: 75,
	domain.SafetyC: 60,
	domain.SafetyD: 40,
}

// Severity penalty tuning. Interactions weigh more than side effects because
// they are harder for a consumer to predict. Both penalties are capped
// independently so one verbose clinical note cannot zero out an ingredient.
const (
	interactionWeight     = 1.2
	sideEffectPenaltyCap  = 15.0
	interactionPenaltyCap = 9.0
)

// Neutral defaults used when no ingredient lines resolve at all.
const (
	neutralEvidenceScore = 50
	neutralSafetyScore   = 75
)

// ScoringConfig holds configuration for the scoring service
type ScoringConfig struct {
	EnableDebugLogging bool
}

// ScoringService computes composition-weighted evidence/safety scores for a
// product from its resolved ingredient lines.
type ScoringService struct {
	severity           *SeverityAssessor
	enableDebugLogging bool
}

// NewScoringService creates a new scoring service
func NewScoringService(config ScoringConfig) *ScoringService {
	return &ScoringService{
		severity:           NewSeverityAssessor(),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// EvidenceScore maps an evidence level to its numeric base score. Unknown
// levels take the conservative D score.
func EvidenceScore(level domain.EvidenceLevel) float64 {
	if score, ok := evidenceScores[level]; ok {
		return score
	}
	return evidenceScores[domain.EvidenceD]
}

// SafetyScore maps a safety level to its numeric base score. Unknown levels
// take the conservative D score.
func SafetyScore(level domain.SafetyLevel) float64 {
	if score, ok := safetyScores[level]; ok {
		return score
	}
	return safetyScores[domain.SafetyD]
}

// ingredientScores is the per-line score pair after severity penalties.
type ingredientScores struct {
	evidence float64
	safety   float64
}

// Score computes the product-level ScoreResult, weighting each resolved
// line's scores by its share of the total declared mass. Duplicate lines for
// the same ingredient are summed as-is into the total (upstream data-entry
// errors are tolerated here and cleaned elsewhere). Never returns an error:
// bad data degrades to documented defaults so one product cannot abort a
// catalog batch.
func (s *ScoringService) Score(product *domain.Product, index domain.IngredientIndex) domain.ScoreResult {
	type weightedLine struct {
		scores ingredientScores
		amount float64
	}

	var resolved []weightedLine
	totalMass := 0.0

	for _, line := range product.Ingredients {
		ingredient, ok := index[line.IngredientID]
		if !ok {
			if s.enableDebugLogging {
				log.Printf("[SCORING] product %s: unresolved ingredient %q, skipping line", product.ID, line.IngredientID)
			}
			continue
		}
		amount := line.AmountMgPerServing
		if amount < 0 {
			amount = 0
		}
		resolved = append(resolved, weightedLine{
			scores: s.scoreIngredient(ingredient),
			amount: amount,
		})
		totalMass += amount
	}

	if len(resolved) == 0 {
		return buildScoreResult(neutralEvidenceScore, neutralSafetyScore)
	}

	if totalMass == 0 {
		// All amounts unknown: stand in the line with the largest declared
		// amount (ties resolve to the primary-flagged line, else the first).
		stand := s.standInLine(product, index)
		if stand == nil {
			return buildScoreResult(neutralEvidenceScore, neutralSafetyScore)
		}
		return buildScoreResult(stand.evidence, stand.safety)
	}

	var evidenceSum, safetySum float64
	for _, line := range resolved {
		evidenceSum += line.scores.evidence * line.amount
		safetySum += line.scores.safety * line.amount
	}

	return buildScoreResult(evidenceSum/totalMass, safetySum/totalMass)
}

// scoreIngredient maps the letter grades to base scores and applies severity
// penalties to the safety score.
func (s *ScoringService) scoreIngredient(ingredient *domain.Ingredient) ingredientScores {
	evidence := EvidenceScore(ingredient.EvidenceLevel)
	safety := SafetyScore(ingredient.SafetyLevel)

	sideEffectPenalty := float64(s.severity.AssessAll(ingredient.SideEffects))
	if sideEffectPenalty > sideEffectPenaltyCap {
		sideEffectPenalty = sideEffectPenaltyCap
	}

	interactionPenalty := float64(s.severity.AssessAll(ingredient.Interactions)) * interactionWeight
	if interactionPenalty > interactionPenaltyCap {
		interactionPenalty = interactionPenaltyCap
	}

	safety -= sideEffectPenalty + interactionPenalty
	if safety < 0 {
		safety = 0
	}

	return ingredientScores{evidence: evidence, safety: safety}
}

// standInLine picks the resolvable line with the largest declared amount.
func (s *ScoringService) standInLine(product *domain.Product, index domain.IngredientIndex) *ingredientScores {
	var best *domain.IngredientLine
	for i := range product.Ingredients {
		line := &product.Ingredients[i]
		if _, ok := index[line.IngredientID]; !ok {
			continue
		}
		switch {
		case best == nil:
			best = line
		case line.AmountMgPerServing > best.AmountMgPerServing:
			best = line
		case line.AmountMgPerServing == best.AmountMgPerServing && line.IsPrimary && !best.IsPrimary:
			best = line
		}
	}
	if best == nil {
		return nil
	}
	scores := s.scoreIngredient(index[best.IngredientID])
	return &scores
}

// buildScoreResult rounds and clamps the weighted scores and derives the
// overall score. Overall == round((evidence+safety)/2) holds by construction.
func buildScoreResult(evidence, safety float64) domain.ScoreResult {
	e := clampScore(int(math.Round(evidence)))
	s := clampScore(int(math.Round(safety)))
	return domain.ScoreResult{
		Evidence: e,
		Safety:   s,
		Overall:  int(math.Round(float64(e+s) / 2)),
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
