package service

import "github.com/turtacn/gdmrisk/internal/domain/models"

// Explain attributes the model output for normalized to each feature. Raw
// values come from record, the patient input as entered before imputation,
// so a field left at 0 is displayed as 0 next to its attribution.
func Explain(explainer Explainer, record models.PatientRecord, normalized models.NormalizedVector) models.Explanation {
	base, phi := explainer.Attribute(normalized)
	raw := record.Vector()

	contributions := make([]models.FeatureContribution, models.FeatureCount)
	for i, name := range models.FeatureNames {
		direction := models.DirectionIncreases
		if phi[i] < 0 {
			direction = models.DirectionDecreases
		}
		contributions[i] = models.FeatureContribution{
			Feature:      name,
			Value:        raw[i],
			ScaledValue:  normalized[i],
			Contribution: phi[i],
			Direction:    direction,
		}
	}

	return models.Explanation{BaseValue: base, Contributions: contributions}
}
