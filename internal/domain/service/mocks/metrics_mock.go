package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/gdmrisk/internal/domain/models"
)

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordAssessment(tier models.RiskTier, probability float64, duration time.Duration) {
	m.Called(tier, probability, duration)
}

func (m *MockMetrics) RecordImputation(feature string) {
	m.Called(feature)
}

func (m *MockMetrics) RecordSideEffectFailure(sink string) {
	m.Called(sink)
}

func (m *MockMetrics) RecordRateLimitHit(scope string) {
	m.Called(scope)
}
