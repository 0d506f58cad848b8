package domain

// WarningSeverity classifies how serious a contraindication match is.
type WarningSeverity string

const (
	SeverityLow      WarningSeverity = "low"
	SeverityModerate WarningSeverity = "moderate"
	SeverityHigh     WarningSeverity = "high"
)

// RiskLevel is the rolled-up verdict over a whole safety report.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// ProfileField identifies which part of the health profile triggered a
// warning.
type ProfileField string

const (
	FieldCondition  ProfileField = "condition"
	FieldMedication ProfileField = "medication"
	FieldAllergy    ProfileField = "allergy"
)

// HealthProfile is supplied per-request by the caller and never persisted by
// the engine. Each field is a set of free-text tags.
type HealthProfile struct {
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// Empty reports whether the profile declares nothing at all.
func (p *HealthProfile) Empty() bool {
	return len(p.Conditions) == 0 && len(p.Medications) == 0 && len(p.Allergies) == 0
}

// RelatedTo identifies the profile entry that triggered a warning.
type RelatedTo struct {
	Type  ProfileField `json:"type"`
	Label string       `json:"label"`
}

// SafetyWarning is one contraindication match, produced transiently per
// health-profile evaluation.
type SafetyWarning struct {
	IngredientID   string          `json:"ingredientId"`
	IngredientName string          `json:"ingredientName"`
	Severity       WarningSeverity `json:"severity"`
	Reason         string          `json:"reason"`
	RelatedTo      RelatedTo       `json:"relatedTo"`
}

// SafetyReport aggregates all warnings for a profile into a single verdict.
type SafetyReport struct {
	Warnings    []SafetyWarning `json:"warnings"`
	SafetyScore int             `json:"safetyScore"`
	RiskLevel   RiskLevel       `json:"riskLevel"`
}
