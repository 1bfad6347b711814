package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/gdmrisk/internal/domain/service"
)

// MockScaler is a mock implementation of Scaler
type MockScaler struct {
	mock.Mock
}

func (m *MockScaler) Transform(x service.Vector) service.Vector {
	args := m.Called(x)
	return args.Get(0).(service.Vector)
}
