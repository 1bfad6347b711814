package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/service"
	"github.com/turtacn/gdmrisk/internal/domain/service/mocks"
)

// linearModel is a logistic model with an exact additive explainer.
type linearModel struct {
	mean, scale, coef, background service.Vector
	intercept                     float64
}

func (l linearModel) Transform(x service.Vector) service.Vector {
	var out service.Vector
	for i := range x {
		out[i] = (x[i] - l.mean[i]) / l.scale[i]
	}
	return out
}

func (l linearModel) DecisionFunction(x service.Vector) float64 {
	z := l.intercept
	for i := range x {
		z += l.coef[i] * x[i]
	}
	return z
}

func (l linearModel) PredictProba(x service.Vector) [2]float64 {
	p := 1 / (1 + math.Exp(-l.DecisionFunction(x)))
	return [2]float64{1 - p, p}
}

func (l linearModel) Predict(x service.Vector) int {
	if l.PredictProba(x)[1] >= 0.5 {
		return 1
	}
	return 0
}

func (l linearModel) Attribute(x service.Vector) (float64, service.Vector) {
	var phi service.Vector
	for i := range x {
		phi[i] = l.coef[i] * (x[i] - l.background[i])
	}
	return l.DecisionFunction(l.background), phi
}

func pimaModel() linearModel {
	return linearModel{
		mean:      service.Vector{3.85, 121.66, 72.39, 29.11, 140.67, 32.46, 0.472, 33.24},
		scale:     service.Vector{3.37, 30.44, 12.10, 8.79, 86.38, 6.88, 0.331, 11.75},
		coef:      service.Vector{0.39, 1.12, -0.05, 0.04, -0.08, 0.68, 0.30, 0.18},
		intercept: -0.87,
	}
}

func TestNewScorer_RequiresArtifacts(t *testing.T) {
	_, err := service.NewScorer(nil, &mocks.MockClassifier{})
	assert.Error(t, err)
	_, err = service.NewScorer(&mocks.MockScaler{}, nil)
	assert.Error(t, err)
}

func TestScorer_Score_UsesCanonicalOrderAndPositiveClass(t *testing.T) {
	scaler := new(mocks.MockScaler)
	classifier := new(mocks.MockClassifier)

	raw := service.Vector{1, 120, 70, 20, 80, 25.0, 0.5, 30}
	scaled := service.Vector{-0.8, -0.05, -0.2, -1.0, -0.7, -1.08, 0.08, -0.28}

	scaler.On("Transform", raw).Return(scaled).Once()
	classifier.On("PredictProba", scaled).Return([2]float64{0.25, 0.75})
	classifier.On("Predict", scaled).Return(1)
	classifier.On("DecisionFunction", scaled).Return(1.0986)

	scorer, err := service.NewScorer(scaler, classifier)
	require.NoError(t, err)

	assessment, normalized := scorer.Score(service.Impute(baselinePatient()))

	assert.Equal(t, models.NormalizedVector(scaled), normalized)
	assert.Equal(t, 0.75, assessment.Probability)
	assert.Equal(t, 75.0, assessment.Score)
	assert.Equal(t, models.TierHigh, assessment.Tier)
	assert.Equal(t, models.ColorRed, assessment.Color)
	assert.Equal(t, 1, assessment.Prediction)
	assert.Equal(t, 1.0986, assessment.RawOutput)
	scaler.AssertExpectations(t)
	classifier.AssertExpectations(t)
}

func TestScorer_Score_ImputedGlucoseReachesScaler(t *testing.T) {
	scaler := new(mocks.MockScaler)
	classifier := new(mocks.MockClassifier)

	raw := service.Vector{1, 117, 70, 20, 80, 25.0, 0.5, 30}
	scaler.On("Transform", raw).Return(service.Vector{})
	classifier.On("PredictProba", service.Vector{}).Return([2]float64{0.9, 0.1})
	classifier.On("Predict", service.Vector{}).Return(0)
	classifier.On("DecisionFunction", service.Vector{}).Return(-2.2)

	scorer, err := service.NewScorer(scaler, classifier)
	require.NoError(t, err)

	p := baselinePatient()
	p.Glucose = 0
	assessment, _ := scorer.Score(service.Impute(p))

	assert.Equal(t, models.TierMinimal, assessment.Tier)
	scaler.AssertExpectations(t)
}

func TestScorer_Score_RealisticLinearModel(t *testing.T) {
	m := pimaModel()
	scorer, err := service.NewScorer(m, m)
	require.NoError(t, err)

	assessment, normalized := scorer.Score(service.Impute(baselinePatient()))

	assert.GreaterOrEqual(t, assessment.Probability, 0.0)
	assert.LessOrEqual(t, assessment.Probability, 1.0)
	assert.InDelta(t, m.DecisionFunction(normalized), assessment.RawOutput, 1e-12)
	wantTier, _ := service.ClassifyProbability(assessment.Probability)
	assert.Equal(t, wantTier, assessment.Tier)
}
