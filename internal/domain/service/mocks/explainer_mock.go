package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/gdmrisk/internal/domain/service"
)

// MockExplainer is a mock implementation of Explainer
type MockExplainer struct {
	mock.Mock
}

func (m *MockExplainer) Attribute(x service.Vector) (float64, service.Vector) {
	args := m.Called(x)
	return args.Get(0).(float64), args.Get(1).(service.Vector)
}
