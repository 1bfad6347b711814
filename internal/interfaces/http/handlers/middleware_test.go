package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/gdmrisk/internal/interfaces/http/handlers"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers.RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.Context().Value(constants.ContextKeyRequestID).(string))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderRequestID))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(constants.HeaderRequestID), 36)
}

func TestRecoveryAndLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	log := monitoring.NewLoggerFromCore(core)

	router := gin.New()
	router.Use(handlers.RecoveryMiddleware(log), handlers.RequestIDMiddleware(), handlers.LoggingMiddleware(log))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(constants.ErrCodeInternal))
	assert.NotContains(t, w.Body.String(), "boom")
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestLoggingMiddleware_LogsServerErrorsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	log := monitoring.NewLoggerFromCore(core)

	router := gin.New()
	router.Use(handlers.RequestIDMiddleware(), handlers.LoggingMiddleware(log))
	router.GET("/bad", func(c *gin.Context) { dto.SendError(c, errors.ErrInvalidRequest("age is required")) })
	router.GET("/limited", func(c *gin.Context) {
		dto.SendError(c, errors.ErrRateLimitExceeded(constants.RateLimitScopeIP, 60))
	})
	router.GET("/down", func(c *gin.Context) { dto.SendError(c, errors.ErrServiceUnavailable("audit store")) })
	router.GET("/scoped", func(c *gin.Context) {
		logger.FromContext(c.Request.Context(), logger.NewNoopLogger()).Info(c.Request.Context(), "handler log")
		c.Status(http.StatusNoContent)
	})

	for _, path := range []string{"/bad", "/limited", "/down", "/scoped"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	errorsLogged := logs.FilterMessage("Request error")
	if assert.Equal(t, 1, errorsLogged.Len()) {
		assert.Equal(t, string(constants.ErrCodeServiceUnavailable), errorsLogged.All()[0].ContextMap()["error_code"])
	}
	assert.Equal(t, 1, logs.FilterMessage("Request rejected").Len())
	assert.Equal(t, 1, logs.FilterMessage("handler log").Len())
}
