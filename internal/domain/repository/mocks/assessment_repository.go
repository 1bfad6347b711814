package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/gdmrisk/internal/domain/models"
)

// AssessmentRepository is a mock of repository.AssessmentRepository.
type AssessmentRepository struct {
	mock.Mock
}

func (m *AssessmentRepository) Save(ctx context.Context, record *models.AssessmentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.AssessmentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssessmentRecord), args.Error(1)
}

func (m *AssessmentRepository) ListRecent(ctx context.Context, limit int) ([]*models.AssessmentRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AssessmentRecord), args.Error(1)
}

func (m *AssessmentRepository) CountByTier(ctx context.Context) (map[models.RiskTier]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.RiskTier]int64), args.Error(1)
}
