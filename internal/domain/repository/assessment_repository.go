package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/turtacn/gdmrisk/internal/domain/models"
)

//go:generate mockery --name AssessmentRepository --output ../repository/mocks --filename assessment_repository.go
// AssessmentRepository stores the audit trail of completed assessments.
type AssessmentRepository interface {
	// Save appends an assessment record.
	Save(ctx context.Context, record *models.AssessmentRecord) error

	// FindByID retrieves a record. A missing record returns (nil, nil).
	FindByID(ctx context.Context, id uuid.UUID) (*models.AssessmentRecord, error)

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*models.AssessmentRecord, error)

	// CountByTier returns the number of stored assessments per tier.
	CountByTier(ctx context.Context) (map[models.RiskTier]int64, error)
}
