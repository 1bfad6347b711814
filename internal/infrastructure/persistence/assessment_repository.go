package persistence

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/repository"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// AssessmentDBM is the database model for an audited assessment.
type AssessmentDBM struct {
	ID              string            `gorm:"type:varchar(36);primaryKey"`
	RequestID       string            `gorm:"type:varchar(64);index"`
	Tier            string            `gorm:"type:varchar(32);not null;index"`
	Probability     float64           `gorm:"not null"`
	Score           float64           `gorm:"not null"`
	ImputedFeatures []string          `gorm:"serializer:json"`
	ModelVersions   map[string]string `gorm:"serializer:json"`
	CreatedAt       time.Time         `gorm:"not null;index"`
}

// TableName specifies the table name for GORM.
func (AssessmentDBM) TableName() string {
	return "assessments"
}

func (m *AssessmentDBM) toDomain() (*models.AssessmentRecord, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &models.AssessmentRecord{
		ID:              id,
		RequestID:       m.RequestID,
		Tier:            models.RiskTier(m.Tier),
		Probability:     m.Probability,
		Score:           m.Score,
		ImputedFeatures: m.ImputedFeatures,
		ModelVersions:   m.ModelVersions,
		CreatedAt:       m.CreatedAt,
	}, nil
}

func fromDomain(r *models.AssessmentRecord) *AssessmentDBM {
	return &AssessmentDBM{
		ID:              r.ID.String(),
		RequestID:       r.RequestID,
		Tier:            string(r.Tier),
		Probability:     r.Probability,
		Score:           r.Score,
		ImputedFeatures: r.ImputedFeatures,
		ModelVersions:   r.ModelVersions,
		CreatedAt:       r.CreatedAt,
	}
}

type assessmentRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewAssessmentRepository creates the gorm-backed audit repository.
func NewAssessmentRepository(db *gorm.DB, log logger.Logger) repository.AssessmentRepository {
	return &assessmentRepository{db: db, log: log}
}

func (r *assessmentRepository) Save(ctx context.Context, record *models.AssessmentRecord) error {
	return r.db.WithContext(ctx).Create(fromDomain(record)).Error
}

func (r *assessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.AssessmentRecord, error) {
	var dbm AssessmentDBM
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&dbm).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dbm.toDomain()
}

func (r *assessmentRepository) ListRecent(ctx context.Context, limit int) ([]*models.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []AssessmentDBM
	if err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*models.AssessmentRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toDomain()
		if err != nil {
			r.log.Warn(ctx, "Skipping assessment row with malformed id", logger.Fields{"id": rows[i].ID})
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *assessmentRepository) CountByTier(ctx context.Context) (map[models.RiskTier]int64, error) {
	var rows []struct {
		Tier  string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&AssessmentDBM{}).
		Select("tier, count(*) as count").
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.RiskTier]int64, len(rows))
	for _, row := range rows {
		out[models.RiskTier(row.Tier)] = row.Count
	}
	return out, nil
}
