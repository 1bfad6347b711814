package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/gdmrisk/internal/domain/models"
)

func TestPatientRecord_Vector(t *testing.T) {
	p := models.PatientRecord{
		Pregnancies: 1, Glucose: 120, BloodPressure: 70, SkinThickness: 20,
		Insulin: 80, BMI: 25.0, DiabetesPedigreeFunction: 0.5, Age: 30,
	}
	assert.Equal(t, [8]float64{1, 120, 70, 20, 80, 25.0, 0.5, 30}, p.Vector())
	assert.Equal(t, "Glucose", models.FeatureNames[models.IdxGlucose])
	assert.Equal(t, "Age", models.FeatureNames[models.IdxAge])
}

func TestExplanation_ReconstructAndRanked(t *testing.T) {
	e := models.Explanation{
		BaseValue: -0.5,
		Contributions: []models.FeatureContribution{
			{Feature: "A", Contribution: 0.1},
			{Feature: "B", Contribution: -0.9},
			{Feature: "C", Contribution: 0.4},
			{Feature: "D", Contribution: -0.4},
		},
	}
	assert.InDelta(t, -1.4, e.Reconstruct(), 1e-12)

	ranked := e.Ranked()
	require.Len(t, ranked, 4)
	assert.Equal(t, []string{"B", "C", "D", "A"}, []string{ranked[0].Feature, ranked[1].Feature, ranked[2].Feature, ranked[3].Feature})
	// canonical order is untouched
	assert.Equal(t, "A", e.Contributions[0].Feature)
}

func TestGuidancePlan_CloneIsDeep(t *testing.T) {
	orig := models.GuidancePlan{
		Tier: models.TierLow,
		Variants: []models.DietPlan{
			{Variant: models.VariantVeg, Sections: []models.MealSection{{Label: "Lunch", Items: []string{"Dal"}}}},
			{Variant: models.VariantNonVeg, GeneralAdvice: []string{"Eat well"}},
		},
	}
	cp := orig.Clone()
	cp.Variants[0].Sections[0].Items[0] = "changed"
	cp.Variants[1].GeneralAdvice[0] = "changed"

	assert.Equal(t, "Dal", orig.Variants[0].Sections[0].Items[0])
	assert.Equal(t, "Eat well", orig.Variants[1].GeneralAdvice[0])

	p, ok := orig.Variant(models.VariantNonVeg)
	require.True(t, ok)
	assert.True(t, p.IsGeneralAdvice())
}

func TestDietVariant_Label(t *testing.T) {
	assert.Equal(t, "Indian (Vegetarian)", models.VariantVeg.Label())
	assert.Equal(t, "Indian (Non-Vegetarian)", models.VariantNonVeg.Label())
}
