package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// RequestIDMiddleware propagates X-Request-ID, generating one when absent.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(string(constants.ContextKeyRequestID), requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID))
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)
		c.Next()
	}
}

// LoggingMiddleware logs incoming requests and stores a request-scoped
// logger in the request context. Errors attached with c.Error are logged
// when errors.ShouldLogError accepts them; client errors are not.
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.ForContext(c.Request.Context())
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), reqLog))

		c.Next()
		latency := time.Since(start)

		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		for _, ge := range c.Errors {
			if !errors.ShouldLogError(ge.Err) {
				continue
			}
			errFields := logger.Merge(fields, logger.Fields{"error_code": errorCode(ge.Err)})
			if errors.IsRateLimitError(ge.Err) {
				reqLog.Warn(c.Request.Context(), "Request rejected", errFields)
				continue
			}
			reqLog.Error(c.Request.Context(), "Request error", ge.Err, errFields)
		}
		if c.Writer.Status() >= 500 {
			reqLog.Warn(c.Request.Context(), "Request failed", fields)
			return
		}
		reqLog.Info(c.Request.Context(), "Request processed", fields)
	}
}

func errorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code())
	}
	return string(constants.ErrCodeInternal)
}

// RecoveryMiddleware recovers from panics.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "Panic recovered", fmt.Errorf("panic: %v", r), logger.Fields{
					"path": c.Request.URL.Path,
				})
				dto.SendError(c, errors.ErrInternal("unexpected server error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
