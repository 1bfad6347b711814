package models

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// RiskTier is one of the four ordered risk categories.
type RiskTier string

const (
	TierMinimal  RiskTier = "Minimal Risk"
	TierLow      RiskTier = "Low Risk"
	TierModerate RiskTier = "Moderate Risk"
	TierHigh     RiskTier = "High Risk"
)

// TierColor is the display color associated with a tier.
type TierColor string

const (
	ColorGreen  TierColor = "green"
	ColorGold   TierColor = "gold"
	ColorOrange TierColor = "orange"
	ColorRed    TierColor = "red"
)

// RiskAssessment is the scoring outcome for one patient.
type RiskAssessment struct {
	Probability float64   `json:"probability" yaml:"probability"`
	Score       float64   `json:"score" yaml:"score"`
	Tier        RiskTier  `json:"tier" yaml:"tier"`
	Color       TierColor `json:"color" yaml:"color"`
	Prediction  int       `json:"prediction" yaml:"prediction"`
	RawOutput   float64   `json:"raw_output" yaml:"raw_output"`
}

// Direction values of a FeatureContribution.
const (
	DirectionIncreases = "increases"
	DirectionDecreases = "decreases"
)

// FeatureContribution is the attribution of a single feature.
type FeatureContribution struct {
	Feature      string  `json:"feature" yaml:"feature"`
	Value        float64 `json:"value" yaml:"value"`
	ScaledValue  float64 `json:"scaled_value" yaml:"scaled_value"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
	Direction    string  `json:"direction" yaml:"direction"`
}

// Explanation pairs the explainer baseline with per-feature contributions in
// canonical order.
type Explanation struct {
	BaseValue     float64               `json:"base_value" yaml:"base_value"`
	Contributions []FeatureContribution `json:"contributions" yaml:"contributions"`
}

// Reconstruct returns the baseline plus the sum of all contributions.
func (e Explanation) Reconstruct() float64 {
	total := e.BaseValue
	for _, c := range e.Contributions {
		total += c.Contribution
	}
	return total
}

// Ranked returns a copy of the contributions ordered by descending magnitude.
// Ties keep canonical order.
func (e Explanation) Ranked() []FeatureContribution {
	out := make([]FeatureContribution, len(e.Contributions))
	copy(out, e.Contributions)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Contribution) > math.Abs(out[j].Contribution)
	})
	return out
}

// AssessmentRecord is the audit trail entry of a completed assessment.
// It carries outcome metadata only, never the patient's measurements.
type AssessmentRecord struct {
	ID              uuid.UUID
	RequestID       string
	Tier            RiskTier
	Probability     float64
	Score           float64
	ImputedFeatures []string
	ModelVersions   map[string]string
	CreatedAt       time.Time
}

// NewAssessmentRecord creates an audit record for an assessment outcome.
func NewAssessmentRecord(id uuid.UUID, assessment RiskAssessment, imputed []string, versions map[string]string) *AssessmentRecord {
	return &AssessmentRecord{
		ID:              id,
		Tier:            assessment.Tier,
		Probability:     assessment.Probability,
		Score:           assessment.Score,
		ImputedFeatures: append([]string(nil), imputed...),
		ModelVersions:   versions,
		CreatedAt:       time.Now().UTC(),
	}
}

// WithRequestID sets the originating request id.
func (r *AssessmentRecord) WithRequestID(requestID string) *AssessmentRecord {
	r.RequestID = requestID
	return r
}
