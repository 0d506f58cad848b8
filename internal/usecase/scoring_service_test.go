package usecase

import (
	"testing"

	"github.com/supplens/backend/internal/domain"
)

func testIndex(ingredients ...domain.Ingredient) domain.IngredientIndex {
	return domain.BuildIngredientIndex(ingredients)
}

func TestEvidenceScore(t *testing.T) {
	cases := []struct {
		level domain.EvidenceLevel
		want  float64
	}{
		{domain.EvidenceS, 95},
		{domain.EvidenceA, 85},
		{domain.EvidenceB, 70},
		{domain.EvidenceC, 55},
		{domain.EvidenceD, 40},
		{domain.EvidenceUnknown, 40},
	}
	for _, tc := range cases {
		if got := EvidenceScore(tc.level); got != tc.want {
			t.Errorf("EvidenceScore(%q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestSafetyScore(t *testing.T) {
	cases := []struct {
		level domain.SafetyLevel
		want  float64
	}{
		{domain.SafetyS, 95},
		{domain.SafetyA, 85},
		{domain.SafetyB, 75},
		{domain.SafetyC, 60},
		{domain.SafetyD, 40},
		{domain.SafetyUnknown, 40},
	}
	for _, tc := range cases {
		if got := SafetyScore(tc.level); got != tc.want {
			t.Errorf("SafetyScore(%q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestScore(t *testing.T) {
	svc := NewScoringService(ScoringConfig{})

	t.Run("single ingredient takes its mapped scores", func(t *testing.T) {
		index := testIndex(domain.Ingredient{
			ID: "naC", Name: "NAC",
			EvidenceLevel: domain.EvidenceA,
			SafetyLevel:   domain.SafetyA,
		})
		product := &domain.Product{
			ID: "p1",
			Ingredients: []domain.IngredientLine{
				{IngredientID: "naC", AmountMgPerServing: 600, IsPrimary: true},
			},
		}

		got := svc.Score(product, index)
		if got.Evidence != 85 || got.Safety != 85 {
			t.Errorf("scores = %+v, want evidence 85 safety 85", got)
		}
		if got.Overall != 85 {
			t.Errorf("overall = %d, want 85", got.Overall)
		}
	})

	t.Run("weights by mass share", func(t *testing.T) {
		index := testIndex(
			domain.Ingredient{ID: "a", EvidenceLevel: domain.EvidenceS, SafetyLevel: domain.SafetyS},
			domain.Ingredient{ID: "b", EvidenceLevel: domain.EvidenceD, SafetyLevel: domain.SafetyD},
		)
		product := &domain.Product{
			ID: "p1",
			Ingredients: []domain.IngredientLine{
				{IngredientID: "a", AmountMgPerServing: 300},
				{IngredientID: "b", AmountMgPerServing: 100},
			},
		}

		got := svc.Score(product, index)
		// evidence = (95*300 + 40*100) / 400 = 81.25 -> 81
		// safety   = (95*300 + 40*100) / 400 = 81.25 -> 81
		if got.Evidence != 81 || got.Safety != 81 {
			t.Errorf("scores = %+v, want 81/81", got)
		}
	})

	t.Run("weighting is linear in amounts", func(t *testing.T) {
		index := testIndex(
			domain.Ingredient{ID: "a", EvidenceLevel: domain.EvidenceS, SafetyLevel: domain.SafetyA},
			domain.Ingredient{ID: "b", EvidenceLevel: domain.EvidenceC, SafetyLevel: domain.SafetyB},
		)
		base := &domain.Product{
			ID: "p1",
			Ingredients: []domain.IngredientLine{
				{IngredientID: "a", AmountMgPerServing: 250},
				{IngredientID: "b", AmountMgPerServing: 750},
			},
		}
		doubled := &domain.Product{
			ID: "p2",
			Ingredients: []domain.IngredientLine{
				{IngredientID: "a", AmountMgPerServing: 500},
				{IngredientID: "b", AmountMgPerServing: 1500},
			},
		}

		if svc.Score(base, index) != svc.Score(doubled, index) {
			t.Error("doubling every amount changed the scores")
		}
	})

	t.Run("overall is rounded mean of evidence and safety", func(t *testing.T) {
		index := testIndex(domain.Ingredient{
			ID: "a", EvidenceLevel: domain.EvidenceB, SafetyLevel: domain.SafetyC,
		})
		product := &domain.Product{
			ID:          "p1",
			Ingredients: []domain.IngredientLine{{IngredientID: "a", AmountMgPerServing: 100}},
		}

		got := svc.Score(product, index)
		// evidence 70, safety 60 -> overall round(65) = 65
		if got.Overall != 65 {
			t.Errorf("overall = %d, want 65", got.Overall)
		}
	})

	t.Run("severity penalties reduce safety only", func(t *testing.T) {
		index := testIndex(domain.Ingredient{
			ID: "a", EvidenceLevel: domain.EvidenceA, SafetyLevel: domain.SafetyA,
			SideEffects:  []string{"may cause nausea"},            // severity 2
			Interactions: []string{"caution with anticoagulants"}, // severity 2 * 1.2 = 2.4
		})
		product := &domain.Product{
			ID:          "p1",
			Ingredients: []domain.IngredientLine{{IngredientID: "a", AmountMgPerServing: 100}},
		}

		got := svc.Score(product, index)
		if got.Evidence != 85 {
			t.Errorf("evidence = %d, want 85 (penalties must not touch evidence)", got.Evidence)
		}
		// safety = 85 - 2 - 2.4 = 80.6 -> 81
		if got.Safety != 81 {
			t.Errorf("safety = %d, want 81", got.Safety)
		}
	})

	t.Run("side effect penalty caps at 15", func(t *testing.T) {
		clauses := make([]string, 10)
		for i := range clauses {
			clauses[i] = "risk of anaphylaxis" // severity 3 each, raw sum 30
		}
		index := testIndex(domain.Ingredient{
			ID: "a", EvidenceLevel: domain.EvidenceA, SafetyLevel: domain.SafetyS,
			SideEffects: clauses,
		})
		product := &domain.Product{
			ID:          "p1",
			Ingredients: []domain.IngredientLine{{IngredientID: "a", AmountMgPerServing: 100}},
		}

		got := svc.Score(product, index)
		// 95 - 15 (capped) = 80
		if got.Safety != 80 {
			t.Errorf("safety = %d, want 80", got.Safety)
		}
	})

	t.Run("interaction penalty caps at 9", func(t *testing.T) {
		clauses := make([]string, 10)
		for i := range clauses {
			clauses[i] = "禁忌" // severity 3 each, weighted sum 36
		}
		index := testIndex(domain.Ingredient{
			ID: "a", EvidenceLevel: domain.EvidenceA, SafetyLevel: domain.SafetyS,
			Interactions: clauses,
		})
		product := &domain.Product{
			ID:          "p1",
			Ingredients: []domain.IngredientLine{{IngredientID: "a", AmountMgPerServing: 100}},
		}

		got := svc.Score(product, index)
		// 95 - 9 (capped) = 86
		if got.Safety != 86 {
			t.Errorf("safety = %d, want 86", got.Safety)
		}
	})

	t.Run("missing levels treated as D", func(t *testing.T) {
		index := testIndex(domain.Ingredient{ID: "a"})
		product := &domain.Product{
			ID:          "p1",
			Ingredients: []domain.IngredientLine{{IngredientID: "a", AmountMgPerServing: 100}},
		}

		got := svc.Score(product, index)
		if got.Evidence != 40 || got.Safety != 40 {
			t.Errorf("scores = %+v, want conservative 40/40", got)
		}
	})

	t.Run("zero total mass falls back to largest declared line", func(t *testing.T) {
		index := testIndex(
			domain.Ingredient{ID: "a", EvidenceLevel: domain.EvidenceS, SafetyLevel: domain.SafetyS},
			domain.Ingredient{ID: "b", EvidenceLevel: domain.EvidenceD, SafetyLevel: domain.SafetyD},
		)
		product := &domain.Product{
			ID: "p1",
			Ingredients: []domain.IngredientLine{
				{IngredientID: "a", AmountMgPerServing: 0, IsPrimary: true},
				{IngredientID: "b", AmountMgPerServing: 0},
			},
		}

		got := svc.Score(product, index)
		// Ties on zero amount resolve to the primary-flagged line.
		if got.Evidence != 95 || got.Safety != 95 {
			t.Errorf("scores = %+v, want primary ingredient's 95/95", got)
		}
	})

	t.Run("no resolvable lines yields neutral defaults", func(t *testing.T) {
		product := &domain.Product{
			ID:          "p1",
			Ingredients: []domain.IngredientLine{{IngredientID: "ghost", AmountMgPerServing: 100}},
		}

		got := svc.Score(product, testIndex())
		if got.Evidence != 50 || got.Safety != 75 {
			t.Errorf("scores = %+v, want neutral 50/75", got)
		}
		if got.Overall != 63 {
			t.Errorf("overall = %d, want 63", got.Overall)
		}
	})

	t.Run("no ingredient lines yields neutral defaults", func(t *testing.T) {
		got := svc.Score(&domain.Product{ID: "p1"}, testIndex())
		if got.Evidence != 50 || got.Safety != 75 {
			t.Errorf("scores = %+v, want neutral 50/75", got)
		}
	})

	t.Run("duplicate lines sum into total mass", func(t *testing.T) {
		index := testIndex(
			domain.Ingredient{ID: "a", EvidenceLevel: domain.EvidenceS, SafetyLevel: domain.SafetyS},
			domain.Ingredient{ID: "b", EvidenceLevel: domain.EvidenceD, SafetyLevel: domain.SafetyD},
		)
		product := &domain.Product{
			ID: "p1",
			Ingredients: []domain.IngredientLine{
				{IngredientID: "a", AmountMgPerServing: 100},
				{IngredientID: "a", AmountMgPerServing: 100}, // upstream data-entry duplicate
				{IngredientID: "b", AmountMgPerServing: 200},
			},
		}

		got := svc.Score(product, index)
		// (95*200 + 40*200) / 400 = 67.5 -> 68
		if got.Evidence != 68 {
			t.Errorf("evidence = %d, want 68 (duplicates double-count by design)", got.Evidence)
		}
	})

	t.Run("negative amounts treated as zero", func(t *testing.T) {
		index := testIndex(
			domain.Ingredient{ID: "a", EvidenceLevel: domain.EvidenceA, SafetyLevel: domain.SafetyA},
			domain.Ingredient{ID: "b", EvidenceLevel: domain.EvidenceD, SafetyLevel: domain.SafetyD},
		)
		product := &domain.Product{
			ID: "p1",
			Ingredients: []domain.IngredientLine{
				{IngredientID: "a", AmountMgPerServing: 100},
				{IngredientID: "b", AmountMgPerServing: -50},
			},
		}

		got := svc.Score(product, index)
		if got.Evidence != 85 || got.Safety != 85 {
			t.Errorf("scores = %+v, want 85/85 (negative line carries no weight)", got)
		}
	})

	t.Run("scores stay within bounds", func(t *testing.T) {
		index := testIndex(domain.Ingredient{
			ID: "a", EvidenceLevel: domain.EvidenceD, SafetyLevel: domain.SafetyD,
			SideEffects:  []string{"death reported", "organ damage", "anaphylaxis", "禁忌", "fatal"},
			Interactions: []string{"禁忌", "death", "肝障害"},
		})
		product := &domain.Product{
			ID:          "p1",
			Ingredients: []domain.IngredientLine{{IngredientID: "a", AmountMgPerServing: 100}},
		}

		got := svc.Score(product, index)
		if got.Evidence < 0 || got.Evidence > 100 || got.Safety < 0 || got.Safety > 100 {
			t.Errorf("scores out of [0,100]: %+v", got)
		}
	})
}
