// Package events publishes and consumes assessment outcome events over Kafka.
package events

import (
	"time"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/pkg/constants"
)

// AssessmentEvent is the message written for every completed assessment.
// It carries outcome metadata only, never the submitted clinical values.
type AssessmentEvent struct {
	ID              string            `json:"id"`
	Type            string            `json:"type"`
	RequestID       string            `json:"request_id,omitempty"`
	Tier            models.RiskTier   `json:"tier"`
	Probability     float64           `json:"probability"`
	Score           float64           `json:"score"`
	ImputedFeatures []string          `json:"imputed_features"`
	ModelVersions   map[string]string `json:"model_versions"`
	Timestamp       time.Time         `json:"timestamp"`
}

// NewAssessmentEvent builds the event for an audit record.
func NewAssessmentEvent(rec *models.AssessmentRecord) AssessmentEvent {
	imputed := rec.ImputedFeatures
	if imputed == nil {
		imputed = []string{}
	}
	return AssessmentEvent{
		ID:              rec.ID.String(),
		Type:            constants.EventTypeAssessmentCompleted,
		RequestID:       rec.RequestID,
		Tier:            rec.Tier,
		Probability:     rec.Probability,
		Score:           rec.Score,
		ImputedFeatures: imputed,
		ModelVersions:   rec.ModelVersions,
		Timestamp:       rec.CreatedAt,
	}
}
