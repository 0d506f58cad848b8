package usecase

import "strings"

// Severity bounds for a single clinical note.
const (
	severityMin = 0
	severityMax = 3
)

// severityRule maps a keyword set to a base severity. Rules are evaluated in
// priority order; the first rule with a matching keyword wins.
type severityRule struct {
	name     string
	keywords []string
	base     int
}

// severityRules is the prioritized rule list. Keyword sets carry both
// Japanese and English terms: the ingredient catalog is maintained in
// Japanese but imported research notes arrive in English.
var severityRules = []severityRule{
	{
		name: "high",
		keywords: []string{
			"禁忌", "アナフィラキシー", "臓器障害", "肝障害", "腎障害", "死亡",
			"contraindicat", "anaphyla", "organ damage", "liver damage", "death", "fatal",
		},
		base: 3,
	},
	{
		name: "medium",
		keywords: []string{
			"注意", "吐き気", "嘔吐", "不眠", "動悸", "医師に相談",
			"caution", "nausea", "vomiting", "insomnia", "palpitation", "consult a doctor",
		},
		base: 2,
	},
	{
		name: "low",
		keywords: []string{
			"軽度", "軽い", "まれ", "稀", "一時的", "発疹",
			"mild", "rash", "rare", "temporary", "transient",
		},
		base: 1,
	},
}

// qualifyingPhrases scope a concern to a subgroup rather than all users
// ("for people with...", "in the case of..."), discounting severity by 1.
var qualifyingPhrases = []string{
	"の方は", "の人は", "場合", "for people with", "in the case of", "if you have",
}

// rareDiseaseTerms name rare genetic/metabolic diseases. A concern scoped to
// one of these applies to a small population only and earns a further -1.
var rareDiseaseTerms = []string{
	"g6pd", "欠損症", "ヘモクロマトーシス", "hemochromatosis",
	"ウィルソン病", "wilson",
}

// SeverityAssessor classifies free-text clinical notes (side-effect or
// interaction descriptions) into a 0-3 severity score using keyword
// heuristics.
type SeverityAssessor struct {
	rules []severityRule
}

// NewSeverityAssessor creates an assessor with the default rule list.
func NewSeverityAssessor() *SeverityAssessor {
	return &SeverityAssessor{rules: severityRules}
}

// Assess scores a single clinical note. Empty or blank text scores 0; text
// matching no rule scores 1 (a note exists, so some concern exists). The
// conditional-phrase discount subtracts 1 when the concern is scoped to a
// subgroup and 1 more when a rare disease is named; discounts never stack
// beyond -2.
func (a *SeverityAssessor) Assess(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	lowered := strings.ToLower(trimmed)

	base := 1
	for _, rule := range a.rules {
		if containsAny(lowered, rule.keywords) {
			base = rule.base
			break
		}
	}

	discount := 0
	if containsAny(lowered, qualifyingPhrases) {
		discount--
		if containsAny(lowered, rareDiseaseTerms) {
			discount--
		}
	}

	return clampSeverity(base + discount)
}

// AssessAll sums the severity of each clause.
func (a *SeverityAssessor) AssessAll(clauses []string) int {
	total := 0
	for _, clause := range clauses {
		total += a.Assess(clause)
	}
	return total
}

func clampSeverity(v int) int {
	if v < severityMin {
		return severityMin
	}
	if v > severityMax {
		return severityMax
	}
	return v
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
