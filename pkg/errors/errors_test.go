package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
)

func TestWrapError(t *testing.T) {
	cause := stderrors.New("pq: password authentication failed for user gdm")
	err := errors.WrapError(cause, constants.ErrCodeServiceUnavailable, "assessment history is unavailable")

	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus())
	assert.Equal(t, constants.ErrCodeServiceUnavailable, err.Code())
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), err.Description())
	assert.NotContains(t, err.Description(), "password")
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, http.StatusInternalServerError, errors.WrapError(cause, constants.ErrCodeInternal, "x").HTTPStatus())
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"client error", errors.ErrInvalidRequest("age is required"), false},
		{"not found", errors.ErrNotFound("assessment"), false},
		{"rate limited", errors.ErrRateLimitExceeded(constants.RateLimitScopeIP, 60), true},
		{"unavailable", errors.ErrServiceUnavailable("audit store"), true},
		{"wrapped internal", fmt.Errorf("handler: %w", errors.ErrInternal("boom")), true},
		{"plain error", stderrors.New("boom"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.ShouldLogError(tt.err))
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	assert.True(t, errors.IsRateLimitError(errors.ErrRateLimitExceeded(constants.RateLimitScopeIP, 60)))
	assert.False(t, errors.IsRateLimitError(errors.ErrServiceUnavailable("x")))
	assert.False(t, errors.IsRateLimitError(stderrors.New("x")))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errors.StatusOf(errors.ErrUnknownTier("extreme")))
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(stderrors.New("x")))

	appErr, ok := errors.AsAppError(fmt.Errorf("wrapped: %w", errors.ErrNotFound("assessment")))
	require.True(t, ok)
	assert.True(t, errors.IsNotFoundError(appErr))
}
