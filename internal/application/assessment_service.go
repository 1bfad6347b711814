// Package application orchestrates the risk-scoring pipeline for the adapters.
package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/repository"
	"github.com/turtacn/gdmrisk/internal/domain/service"
	"github.com/turtacn/gdmrisk/internal/infrastructure/events"
	"github.com/turtacn/gdmrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
	"github.com/turtacn/gdmrisk/pkg/utils"
)

// Side-effect sink names used in metrics and logs.
const (
	SinkAudit  = "audit"
	SinkEvents = "events"
)

// ModelSource supplies the loaded model artifacts.
type ModelSource interface {
	Scaler() service.Scaler
	Classifier() service.Classifier
	Explainer() service.Explainer
	Versions() map[string]string
}

// AssessmentService defines the use cases exposed to the HTTP and CLI adapters.
type AssessmentService interface {
	Assess(ctx context.Context, req *dto.AssessmentRequest) (*dto.AssessmentResponse, error)
	Guidance(tier string) (*models.GuidancePlan, error)
	Tiers() []dto.TierDTO
	FindAssessment(ctx context.Context, id string) (*dto.AuditRecordDTO, error)
	Versions() map[string]string
}

type assessmentServiceImpl struct {
	scorer    *service.Scorer
	explainer service.Explainer
	versions  map[string]string
	repo      repository.AssessmentRepository
	publisher events.Publisher
	metrics   service.Metrics
	tracer    trace.Tracer
	logger    logger.Logger
}

// NewAssessmentService wires the pipeline. repo and publisher are optional.
func NewAssessmentService(
	source ModelSource,
	repo repository.AssessmentRepository,
	publisher events.Publisher,
	metrics service.Metrics,
	log logger.Logger,
) (AssessmentService, error) {
	if source == nil {
		return nil, errors.ErrInvalidConfig("model artifacts are required")
	}
	scorer, err := service.NewScorer(source.Scaler(), source.Classifier())
	if err != nil {
		return nil, err
	}
	if source.Explainer() == nil {
		return nil, errors.ErrInvalidConfig("explainer is required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if metrics == nil {
		metrics = service.NoopMetrics{}
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}

	return &assessmentServiceImpl{
		scorer:    scorer,
		explainer: source.Explainer(),
		versions:  source.Versions(),
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		tracer:    otel.Tracer(constants.ServiceName),
		logger:    log,
	}, nil
}

// Assess runs impute, score, explain and guidance lookup for one patient.
func (s *assessmentServiceImpl) Assess(ctx context.Context, req *dto.AssessmentRequest) (*dto.AssessmentResponse, error) {
	start := time.Now()

	// 1. Validate request payload
	if req == nil {
		return nil, errors.ErrInvalidRequest("request body is required")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	record := req.ToPatientRecord()

	// 2. Impute
	_, span := s.tracer.Start(ctx, "assessment.impute")
	imputed := service.Impute(record)
	span.SetAttributes(attribute.StringSlice("gdm.imputed_features", imputed.Imputed))
	span.End()

	// 3. Score
	_, span = s.tracer.Start(ctx, "assessment.score")
	assessment, normalized := s.scorer.Score(imputed)
	span.SetAttributes(
		attribute.Float64("gdm.probability", assessment.Probability),
		attribute.String("gdm.tier", string(assessment.Tier)),
	)
	span.End()

	// 4. Explain
	_, span = s.tracer.Start(ctx, "assessment.explain")
	explanation := service.Explain(s.explainer, record, normalized)
	span.End()

	// 5. Guidance
	_, span = s.tracer.Start(ctx, "assessment.guidance")
	plan, err := service.LookupGuidance(assessment.Tier)
	span.End()
	if err != nil {
		// every tier produced by the scorer has guidance
		return nil, errors.ErrInternal("guidance lookup failed").WithCause(err)
	}

	id := uuid.New()
	resp := &dto.AssessmentResponse{
		ID:              id.String(),
		Input:           record,
		Imputed:         imputed.PatientRecord,
		ImputedFeatures: nonNil(imputed.Imputed),
		Assessment:      assessment,
		Explanation:     dto.NewExplanationDTO(explanation),
		Guidance:        plan,
		ModelVersions:   s.versions,
		Disclaimer:      models.Disclaimer,
	}

	for _, f := range imputed.Imputed {
		s.metrics.RecordImputation(f)
	}
	s.metrics.RecordAssessment(assessment.Tier, assessment.Probability, time.Since(start))

	rec := models.NewAssessmentRecord(id, assessment, imputed.Imputed, s.versions).
		WithRequestID(requestIDFrom(ctx))
	s.recordOutcome(ctx, rec)

	logger.FromContext(ctx, s.logger).Info(ctx, "Assessment completed", logger.Fields{
		"assessment_id": resp.ID,
		"tier":          assessment.Tier,
		"probability":   assessment.Probability,
		"imputed":       len(imputed.Imputed),
	})
	return resp, nil
}

// recordOutcome appends the audit record and publishes the event. Failures
// are logged and counted; the assessment itself has already succeeded.
func (s *assessmentServiceImpl) recordOutcome(ctx context.Context, rec *models.AssessmentRecord) {
	fields := logger.Fields{"assessment_id": rec.ID.String()}
	log := logger.FromContext(ctx, s.logger)

	if s.repo != nil {
		if err := s.repo.Save(ctx, rec); err != nil {
			s.metrics.RecordSideEffectFailure(SinkAudit)
			monitoring.RecordError(ctx, err, attribute.String("gdm.sink", SinkAudit))
			log.Error(ctx, "Failed to save assessment audit record", err, fields)
		}
	}

	if err := s.publisher.Publish(ctx, events.NewAssessmentEvent(rec)); err != nil {
		s.metrics.RecordSideEffectFailure(SinkEvents)
		monitoring.RecordError(ctx, err, attribute.String("gdm.sink", SinkEvents))
		log.Error(ctx, "Failed to publish assessment event", err, fields)
	}
}

// Guidance looks a plan up by tier slug or tier name.
func (s *assessmentServiceImpl) Guidance(tier string) (*models.GuidancePlan, error) {
	parsed, err := service.ParseTier(tier)
	if err != nil {
		return nil, err
	}
	plan, err := service.LookupGuidance(parsed)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Tiers lists the tiers in ascending score order.
func (s *assessmentServiceImpl) Tiers() []dto.TierDTO {
	bands := service.TierBands()
	out := make([]dto.TierDTO, len(bands))
	for i, b := range bands {
		out[i] = dto.NewTierDTO(b)
	}
	return out
}

// FindAssessment returns a stored assessment outcome.
func (s *assessmentServiceImpl) FindAssessment(ctx context.Context, id string) (*dto.AuditRecordDTO, error) {
	if s.repo == nil {
		return nil, errors.ErrServiceUnavailable("assessment history is disabled")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.ErrInvalidRequest("assessment id must be a UUID")
	}
	rec, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, constants.ErrCodeServiceUnavailable, "assessment history is unavailable")
	}
	if rec == nil {
		return nil, errors.ErrNotFound("assessment")
	}
	out := dto.NewAuditRecordDTO(rec)
	return &out, nil
}

// Versions returns the artifact versions in use.
func (s *assessmentServiceImpl) Versions() map[string]string {
	out := make(map[string]string, len(s.versions))
	for k, v := range s.versions {
		out[k] = v
	}
	return out
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
