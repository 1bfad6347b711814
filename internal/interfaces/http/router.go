// Package http exposes the assessment service over HTTP/JSON.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/config"
	"github.com/turtacn/gdmrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/gdmrisk/internal/infrastructure/ratelimit"
	"github.com/turtacn/gdmrisk/internal/interfaces/http/handlers"
	"github.com/turtacn/gdmrisk/internal/interfaces/http/middleware"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// Router HTTP 路由器
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	logger            logger.Logger
	metrics           *monitoring.Metrics
	gatherer          prometheus.Gatherer
	limiter           ratelimit.Limiter
	healthHandler     *handlers.HealthHandler
	assessmentHandler *handlers.AssessmentHandler
	server            *http.Server
}

// NewRouter 创建路由器. limiter may be nil when rate limiting is disabled.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	metrics *monitoring.Metrics,
	gatherer prometheus.Gatherer,
	limiter ratelimit.Limiter,
	healthHandler *handlers.HealthHandler,
	assessmentHandler *handlers.AssessmentHandler,
) *Router {
	// 设置 Gin 模式
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := &Router{
		engine:            gin.New(),
		config:            cfg,
		logger:            log,
		metrics:           metrics,
		gatherer:          gatherer,
		limiter:           limiter,
		healthHandler:     healthHandler,
		assessmentHandler: assessmentHandler,
	}
	r.SetupRoutes()
	r.server = &http.Server{
		Addr:           cfg.Server.Addr(),
		Handler:        r.engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
	return r
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes() {
	// 全局中间件
	r.engine.Use(handlers.RecoveryMiddleware(r.logger))
	r.engine.Use(handlers.RequestIDMiddleware())
	r.engine.Use(middleware.ObservabilityMiddleware(
		otel.Tracer(constants.ServiceName),
		r.metrics.HTTPRequestsTotal,
		r.metrics.HTTPRequestDuration,
	))
	r.engine.Use(handlers.LoggingMiddleware(r.logger))

	// CORS 配置
	corsConfig := cors.Config{
		AllowOrigins:  r.config.Server.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", constants.HeaderRequestID},
		ExposeHeaders: []string{constants.HeaderRequestID, constants.HeaderRateLimitLimit, constants.HeaderRateLimitRemaining, constants.HeaderRetryAfter},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 || corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	r.engine.Use(cors.New(corsConfig))

	// 健康检查路由
	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/ready", r.healthHandler.ReadinessCheck)
	r.engine.GET("/live", r.healthHandler.LivenessCheck)

	// Prometheus metrics
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))

	// Pprof 性能分析（仅在非生产环境）
	if !r.config.Server.IsProduction() {
		pprof.Register(r.engine)
	}

	// API 路由组
	v1 := r.engine.Group("/api/v1")
	{
		assessments := v1.Group("/assessments")
		if r.limiter != nil {
			assessments.Use(middleware.RateLimitMiddleware(r.limiter, monitoring.NewMetricsAdapter(r.metrics), r.logger))
		}
		assessments.POST("", r.assessmentHandler.CreateAssessment)
		assessments.GET("/:id", r.assessmentHandler.GetAssessment)

		v1.GET("/guidance/:tier", r.assessmentHandler.GetGuidance)
		v1.GET("/tiers", r.assessmentHandler.ListTiers)
		v1.GET("/model", r.assessmentHandler.GetModel)
	}

	// 404 处理
	r.engine.NoRoute(func(c *gin.Context) {
		dto.SendError(c, errors.ErrNotFound("route"))
	})
}

// Start 启动 HTTP 服务器. It blocks until the server stops.
func (r *Router) Start() error {
	r.logger.Info(context.Background(), "Starting HTTP server", logger.Fields{"address": r.server.Addr})

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop 停止 HTTP 服务器
func (r *Router) Stop(ctx context.Context) error {
	r.logger.Info(ctx, "Stopping HTTP server...")
	return r.server.Shutdown(ctx)
}
