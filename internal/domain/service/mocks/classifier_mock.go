package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/gdmrisk/internal/domain/service"
)

// MockClassifier is a mock implementation of Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) PredictProba(x service.Vector) [2]float64 {
	args := m.Called(x)
	return args.Get(0).([2]float64)
}

func (m *MockClassifier) Predict(x service.Vector) int {
	args := m.Called(x)
	return args.Int(0)
}

func (m *MockClassifier) DecisionFunction(x service.Vector) float64 {
	args := m.Called(x)
	return args.Get(0).(float64)
}
