package service

import (
	"errors"

	"github.com/turtacn/gdmrisk/internal/domain/models"
)

// Scorer turns an imputed record into a risk assessment.
type Scorer struct {
	scaler     Scaler
	classifier Classifier
}

// NewScorer creates a Scorer. Both artifacts are required.
func NewScorer(scaler Scaler, classifier Classifier) (*Scorer, error) {
	if scaler == nil {
		return nil, errors.New("scorer: scaler is required")
	}
	if classifier == nil {
		return nil, errors.New("scorer: classifier is required")
	}
	return &Scorer{scaler: scaler, classifier: classifier}, nil
}

// Score normalizes the record, runs the classifier and maps the class-1
// probability to a tier. The normalized vector is returned for the
// explanation stage.
func (s *Scorer) Score(rec models.ImputedRecord) (models.RiskAssessment, models.NormalizedVector) {
	normalized := models.NormalizedVector(s.scaler.Transform(rec.Vector()))

	proba := s.classifier.PredictProba(normalized)
	p := proba[1]
	tier, color := ClassifyProbability(p)

	return models.RiskAssessment{
		Probability: p,
		Score:       p * 100,
		Tier:        tier,
		Color:       color,
		Prediction:  s.classifier.Predict(normalized),
		RawOutput:   s.classifier.DecisionFunction(normalized),
	}, normalized
}
