package dto

import (
	"time"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/service"
)

// AssessmentRequest is the body of POST /api/v1/assessments. Fields are
// pointers so an explicit 0 (the "not measured" marker) is distinguishable
// from a missing field. Bounds follow the data-entry form.
type AssessmentRequest struct {
	Pregnancies              *int     `json:"pregnancies" yaml:"pregnancies" binding:"required,min=0,max=20"`
	Glucose                  *int     `json:"glucose" yaml:"glucose" binding:"required,min=0,max=999"`
	BloodPressure            *int     `json:"blood_pressure" yaml:"blood_pressure" binding:"required,min=0,max=140"`
	SkinThickness            *int     `json:"skin_thickness" yaml:"skin_thickness" binding:"required,min=0,max=100"`
	Insulin                  *int     `json:"insulin" yaml:"insulin" binding:"required,min=0,max=900"`
	BMI                      *float64 `json:"bmi" yaml:"bmi" binding:"required,min=0,max=70"`
	DiabetesPedigreeFunction *float64 `json:"diabetes_pedigree_function" yaml:"diabetes_pedigree_function" binding:"required,min=0,max=2.5"`
	Age                      *int     `json:"age" yaml:"age" binding:"required,min=21,max=90"`
}

// NewAssessmentRequest builds a fully populated request.
func NewAssessmentRequest(p models.PatientRecord) *AssessmentRequest {
	return &AssessmentRequest{
		Pregnancies:              &p.Pregnancies,
		Glucose:                  &p.Glucose,
		BloodPressure:            &p.BloodPressure,
		SkinThickness:            &p.SkinThickness,
		Insulin:                  &p.Insulin,
		BMI:                      &p.BMI,
		DiabetesPedigreeFunction: &p.DiabetesPedigreeFunction,
		Age:                      &p.Age,
	}
}

// ToPatientRecord converts a validated request. Missing fields become 0.
func (r *AssessmentRequest) ToPatientRecord() models.PatientRecord {
	return models.PatientRecord{
		Pregnancies:              deref(r.Pregnancies),
		Glucose:                  deref(r.Glucose),
		BloodPressure:            deref(r.BloodPressure),
		SkinThickness:            deref(r.SkinThickness),
		Insulin:                  deref(r.Insulin),
		BMI:                      deref(r.BMI),
		DiabetesPedigreeFunction: deref(r.DiabetesPedigreeFunction),
		Age:                      deref(r.Age),
	}
}

func deref[T int | float64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}

// ExplanationDTO carries the attribution in canonical and ranked order.
type ExplanationDTO struct {
	BaseValue     float64                      `json:"base_value" yaml:"base_value"`
	OutputValue   float64                      `json:"output_value" yaml:"output_value"`
	Contributions []models.FeatureContribution `json:"contributions" yaml:"contributions"`
	Ranked        []models.FeatureContribution `json:"ranked" yaml:"ranked"`
}

// AssessmentResponse is the full result of one assessment.
type AssessmentResponse struct {
	ID              string                `json:"id" yaml:"id"`
	Input           models.PatientRecord  `json:"input" yaml:"input"`
	Imputed         models.PatientRecord  `json:"imputed" yaml:"imputed"`
	ImputedFeatures []string              `json:"imputed_features" yaml:"imputed_features"`
	Assessment      models.RiskAssessment `json:"assessment" yaml:"assessment"`
	Explanation     ExplanationDTO        `json:"explanation" yaml:"explanation"`
	Guidance        models.GuidancePlan   `json:"guidance" yaml:"guidance"`
	ModelVersions   map[string]string     `json:"model_versions" yaml:"model_versions"`
	Disclaimer      string                `json:"disclaimer" yaml:"disclaimer"`
}

// NewExplanationDTO converts a domain explanation.
func NewExplanationDTO(e models.Explanation) ExplanationDTO {
	return ExplanationDTO{
		BaseValue:     e.BaseValue,
		OutputValue:   e.Reconstruct(),
		Contributions: e.Contributions,
		Ranked:        e.Ranked(),
	}
}

// TierDTO describes one risk tier for the tiers endpoint.
type TierDTO struct {
	Tier     models.RiskTier  `json:"tier" yaml:"tier"`
	Slug     string           `json:"slug" yaml:"slug"`
	Color    models.TierColor `json:"color" yaml:"color"`
	MinScore float64          `json:"min_score" yaml:"min_score"`
	MaxScore float64          `json:"max_score" yaml:"max_score"`
}

// NewTierDTO converts a tier band.
func NewTierDTO(b service.TierBand) TierDTO {
	return TierDTO{
		Tier:     b.Tier,
		Slug:     service.TierSlug(b.Tier),
		Color:    b.Color,
		MinScore: b.Min,
		MaxScore: b.Max,
	}
}

// AuditRecordDTO is the outward form of a stored assessment outcome.
type AuditRecordDTO struct {
	ID              string            `json:"id" yaml:"id"`
	RequestID       string            `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	Tier            models.RiskTier   `json:"tier" yaml:"tier"`
	Probability     float64           `json:"probability" yaml:"probability"`
	Score           float64           `json:"score" yaml:"score"`
	ImputedFeatures []string          `json:"imputed_features" yaml:"imputed_features"`
	ModelVersions   map[string]string `json:"model_versions" yaml:"model_versions"`
	CreatedAt       time.Time         `json:"created_at" yaml:"created_at"`
}

// NewAuditRecordDTO converts an audit record.
func NewAuditRecordDTO(r *models.AssessmentRecord) AuditRecordDTO {
	return AuditRecordDTO{
		ID:              r.ID.String(),
		RequestID:       r.RequestID,
		Tier:            r.Tier,
		Probability:     r.Probability,
		Score:           r.Score,
		ImputedFeatures: r.ImputedFeatures,
		ModelVersions:   r.ModelVersions,
		CreatedAt:       r.CreatedAt,
	}
}
