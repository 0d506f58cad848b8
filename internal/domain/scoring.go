package domain

// ScoreResult is derived, never stored as source of truth: it is always
// recomputable from Ingredient + IngredientLine data.
// Invariant: Overall == round((Evidence + Safety) / 2).
type ScoreResult struct {
	Evidence int `json:"evidence"`
	Safety   int `json:"safety"`
	Overall  int `json:"overall"`
}

// TierRank is a per-axis letter grade, S (best) through D.
type TierRank string

const (
	TierS TierRank = "S"
	TierA TierRank = "A"
	TierB TierRank = "B"
	TierC TierRank = "C"
	TierD TierRank = "D"
)

// tierOrder orders ranks best-first for worst-of combination.
var tierOrder = map[TierRank]int{
	TierS: 0,
	TierA: 1,
	TierB: 2,
	TierC: 3,
	TierD: 4,
}

// Worse reports whether r is a strictly worse rank than other.
func (r TierRank) Worse(other TierRank) bool {
	return tierOrder[r] > tierOrder[other]
}

// TierRatings holds the five independent axis ranks plus the combined
// overall rank. Recomputed whenever scores or peer-set prices change.
type TierRatings struct {
	Price             TierRank `json:"price"`
	CostEffectiveness TierRank `json:"costEffectiveness"`
	Content           TierRank `json:"content"`
	Evidence          TierRank `json:"evidence"`
	Safety            TierRank `json:"safety"`
	Overall           TierRank `json:"overall"`
}

// Badge is a merit award a product can earn against its peer set.
type Badge string

const (
	BadgeLowestPrice    Badge = "lowest-price"
	BadgeHighestContent Badge = "highest-content"
	BadgeBestValue      Badge = "best-value"
	BadgeEvidenceS      Badge = "evidence-s"
	BadgeHighSafety     Badge = "high-safety"
)

// AllBadges lists every badge in award (insertion) order.
var AllBadges = []Badge{
	BadgeLowestPrice,
	BadgeHighestContent,
	BadgeBestValue,
	BadgeEvidenceS,
	BadgeHighSafety,
}

// ScoredProduct is the engine's output for one product after the two-phase
// catalog batch: absolute scores first, then peer-relative ranks and badges.
type ScoredProduct struct {
	ProductID string      `json:"productId"`
	Scores    ScoreResult `json:"scores"`
	Tiers     TierRatings `json:"tiers"`
	Badges    []Badge     `json:"badges"`
	Perfect   bool        `json:"perfect"`
}

// HasBadge reports whether b was awarded, independent of award order.
func (s *ScoredProduct) HasBadge(b Badge) bool {
	for _, got := range s.Badges {
		if got == b {
			return true
		}
	}
	return false
}
