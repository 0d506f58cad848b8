package domain

import "strings"

// EvidenceLevel grades the strength of clinical research behind an
// ingredient's claimed effect, S (strongest) through D (weakest).
type EvidenceLevel string

const (
	EvidenceS EvidenceLevel = "S"
	EvidenceA EvidenceLevel = "A"
	EvidenceB EvidenceLevel = "B"
	EvidenceC EvidenceLevel = "C"
	EvidenceD EvidenceLevel = "D"

	// EvidenceUnknown routes to the conservative default (treated as D).
	EvidenceUnknown EvidenceLevel = ""
)

// SafetyLevel grades an ingredient's general safety profile independent of
// any specific user.
type SafetyLevel string

const (
	SafetyS SafetyLevel = "S"
	SafetyA SafetyLevel = "A"
	SafetyB SafetyLevel = "B"
	SafetyC SafetyLevel = "C"
	SafetyD SafetyLevel = "D"

	SafetyUnknown SafetyLevel = ""
)

// ParseEvidenceLevel normalizes a raw CMS letter grade. Anything outside
// S/A/B/C/D becomes EvidenceUnknown.
func ParseEvidenceLevel(s string) EvidenceLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return EvidenceS
	case "A":
		return EvidenceA
	case "B":
		return EvidenceB
	case "C":
		return EvidenceC
	case "D":
		return EvidenceD
	default:
		return EvidenceUnknown
	}
}

// ParseSafetyLevel normalizes a raw CMS letter grade. Anything outside
// S/A/B/C/D becomes SafetyUnknown.
func ParseSafetyLevel(s string) SafetyLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return SafetyS
	case "A":
		return SafetyA
	case "B":
		return SafetyB
	case "C":
		return SafetyC
	case "D":
		return SafetyD
	default:
		return SafetyUnknown
	}
}

// Contraindication declares a profile tag (condition, medication or allergy)
// for which an ingredient is flagged as risky, with the editorially assigned
// severity for that combination.
type Contraindication struct {
	Tag      string          `json:"tag"`
	Severity WarningSeverity `json:"severity"`
	Note     string          `json:"note,omitempty"`
}

// Ingredient is immutable reference data maintained in the CMS. The engine
// reads it and never writes it.
type Ingredient struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	EvidenceLevel EvidenceLevel `json:"evidenceLevel"`
	SafetyLevel   SafetyLevel   `json:"safetyLevel"`

	// SideEffects and Interactions are free-text clinical notes, one clause
	// per entry. The CMS sometimes stores a single blob; callers split it
	// before handing records to the engine.
	SideEffects  []string `json:"sideEffects,omitempty"`
	Interactions []string `json:"interactions,omitempty"`

	Contraindications []Contraindication `json:"contraindications,omitempty"`
}

// IngredientIndex resolves ingredient references on product lines.
type IngredientIndex map[string]*Ingredient

// BuildIngredientIndex keys ingredients by ID. Later duplicates win, matching
// the CMS export order (latest revision last).
func BuildIngredientIndex(ingredients []Ingredient) IngredientIndex {
	index := make(IngredientIndex, len(ingredients))
	for i := range ingredients {
		index[ingredients[i].ID] = &ingredients[i]
	}
	return index
}
