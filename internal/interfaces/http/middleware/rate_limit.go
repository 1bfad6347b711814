package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/domain/service"
	"github.com/turtacn/gdmrisk/internal/infrastructure/ratelimit"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// RateLimitMiddleware limits requests per client IP.
func RateLimitMiddleware(limiter ratelimit.Limiter, metrics service.Metrics, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := constants.RateLimitScopeIP
		identifier := c.ClientIP()

		res, err := limiter.Allow(c.Request.Context(), scope, identifier)
		if err != nil {
			log.Error(c.Request.Context(), "rate limiter failed", err)
			c.Next() // Fail open
			return
		}

		c.Header(constants.HeaderRateLimitLimit, strconv.FormatInt(res.Limit, 10))
		c.Header(constants.HeaderRateLimitRemaining, strconv.FormatInt(res.Remaining, 10))

		if !res.Allowed {
			metrics.RecordRateLimitHit(string(scope))
			log.Warn(c.Request.Context(), "rate limit exceeded", logger.Fields{
				"scope":      string(scope),
				"identifier": identifier,
				"limit":      res.Limit,
			})
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(res.RetryAfter)))
			dto.SendError(c, errors.ErrRateLimitExceeded(scope, int(res.Limit)))
			c.Abort()
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
