package usecase

import (
	"fmt"
	"strings"

	"github.com/supplens/backend/internal/domain"
)

// Safety score deductions per warning severity.
const (
	deductionHigh     = 30
	deductionModerate = 15
	deductionLow      = 5
)

// SafetyService cross-references a user health profile against ingredient
// contraindication declarations and rolls the matches up into a risk-scored
// report. The profile is never persisted.
type SafetyService struct{}

// NewSafetyService creates a new safety service
func NewSafetyService() *SafetyService {
	return &SafetyService{}
}

// Check evaluates the profile against every ingredient in the table. Tags
// match case-insensitively and exactly against the profile's conditions,
// medications and allergies; each match yields one warning carrying the
// ingredient's declared severity.
func (s *SafetyService) Check(profile domain.HealthProfile, ingredients []domain.Ingredient) domain.SafetyReport {
	return s.CheckSubset(profile, ingredients, nil)
}

// CheckSubset is Check restricted to the given ingredient IDs. A nil or
// empty filter means no restriction; severity semantics are unchanged.
func (s *SafetyService) CheckSubset(profile domain.HealthProfile, ingredients []domain.Ingredient, ingredientIDs []string) domain.SafetyReport {
	var filter map[string]bool
	if len(ingredientIDs) > 0 {
		filter = make(map[string]bool, len(ingredientIDs))
		for _, id := range ingredientIDs {
			filter[id] = true
		}
	}

	entries := profileEntries(profile)

	var warnings []domain.SafetyWarning
	for i := range ingredients {
		ingredient := &ingredients[i]
		if filter != nil && !filter[ingredient.ID] {
			continue
		}
		for _, contra := range ingredient.Contraindications {
			tag := normalizeTag(contra.Tag)
			if tag == "" {
				continue
			}
			for _, entry := range entries {
				if entry.tag != tag {
					continue
				}
				warnings = append(warnings, domain.SafetyWarning{
					IngredientID:   ingredient.ID,
					IngredientName: ingredient.Name,
					Severity:       contra.Severity,
					Reason:         warningReason(ingredient.Name, contra),
					RelatedTo: domain.RelatedTo{
						Type:  entry.field,
						Label: entry.label,
					},
				})
			}
		}
	}

	return buildReport(warnings)
}

// profileEntry is one normalized profile tag with its originating field.
type profileEntry struct {
	tag   string
	label string
	field domain.ProfileField
}

func profileEntries(profile domain.HealthProfile) []profileEntry {
	var entries []profileEntry
	appendEntries := func(tags []string, field domain.ProfileField) {
		for _, raw := range tags {
			tag := normalizeTag(raw)
			if tag == "" {
				continue
			}
			entries = append(entries, profileEntry{
				tag:   tag,
				label: strings.TrimSpace(raw),
				field: field,
			})
		}
	}
	appendEntries(profile.Conditions, domain.FieldCondition)
	appendEntries(profile.Medications, domain.FieldMedication)
	appendEntries(profile.Allergies, domain.FieldAllergy)
	return entries
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func warningReason(ingredientName string, contra domain.Contraindication) string {
	if contra.Note != "" {
		return contra.Note
	}
	return fmt.Sprintf("%s is contraindicated for %s", ingredientName, contra.Tag)
}

// buildReport rolls warnings up into the aggregate score and risk verdict:
// score = max(0, 100 - 30*high - 15*moderate - 5*low), risk level by the
// worst severity present.
func buildReport(warnings []domain.SafetyWarning) domain.SafetyReport {
	var high, moderate, low int
	for _, warning := range warnings {
		switch warning.Severity {
		case domain.SeverityHigh:
			high++
		case domain.SeverityModerate:
			moderate++
		default:
			low++
		}
	}

	score := 100 - deductionHigh*high - deductionModerate*moderate - deductionLow*low
	if score < 0 {
		score = 0
	}

	risk := domain.RiskNone
	switch {
	case high > 0:
		risk = domain.RiskHigh
	case moderate > 0:
		risk = domain.RiskModerate
	case len(warnings) > 0:
		risk = domain.RiskLow
	}

	return domain.SafetyReport{
		Warnings:    warnings,
		SafetyScore: score,
		RiskLevel:   risk,
	}
}
