package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/gdmrisk/pkg/logger"
)

const checkTimeout = 2 * time.Second

// StaleChecker reports whether the loaded artifacts changed on disk.
type StaleChecker interface {
	Stale() bool
}

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	artifacts StaleChecker
	checks    map[string]CheckFunc
	log       logger.Logger
}

// NewHealthHandler creates a new HealthHandler. artifacts may be nil when
// the artifact directory is not watched.
func NewHealthHandler(artifacts StaleChecker, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		artifacts: artifacts,
		checks:    make(map[string]CheckFunc),
		log:       log,
	}
}

// WithCheck registers a dependency probe such as the audit database or Redis.
func (h *HealthHandler) WithCheck(name string, check CheckFunc) *HealthHandler {
	h.checks[name] = check
	return h
}

// HealthCheck reports the state of every dependency. A failing check
// degrades the status but keeps 200.
// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	h.respond(c, h.performChecks(c.Request.Context()), false)
}

// ReadinessCheck returns 503 while the artifacts are stale or a dependency fails.
// GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	h.respond(c, h.performChecks(c.Request.Context()), true)
}

// LivenessCheck only reports that the process serves requests.
// GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

func (h *HealthHandler) respond(c *gin.Context, checks map[string]string, strict bool) {
	status := "healthy"
	httpStatus := http.StatusOK
	for _, name := range sortedKeys(checks) {
		if checks[name] != "ok" {
			status = "degraded"
			if strict {
				status = "unavailable"
				httpStatus = http.StatusServiceUnavailable
			}
			h.log.Warn(c.Request.Context(), "Health check failed", logger.Fields{
				"check":  name,
				"result": checks[name],
			})
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

func (h *HealthHandler) performChecks(ctx context.Context) map[string]string {
	checks := map[string]string{"artifacts": "ok"}
	if h.artifacts != nil && h.artifacts.Stale() {
		checks["artifacts"] = "stale: restart to load the changed artifacts"
	}

	var wg sync.WaitGroup
	mu := &sync.Mutex{}
	wg.Add(len(h.checks))
	for name, check := range h.checks {
		go func(name string, check CheckFunc) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			status := "ok"
			if err := check(checkCtx); err != nil {
				status = "error: " + err.Error()
			}
			mu.Lock()
			checks[name] = status
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()
	return checks
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
