// Package monitoring provides adapters to connect the domain's metrics interface with a concrete implementation like Prometheus.
package monitoring

import (
	"time"

	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/internal/domain/service"
)

// MetricsAdapter implements the domain's service.Metrics interface, sending metrics to a Prometheus backend.
// This adapter translates the domain-specific metric calls into the appropriate Prometheus client calls.
// MetricsAdapter 实现了域的 service.Metrics 接口，将指标发送到 Prometheus 后端。
// 此适配器将特定于域的指标调用转换为适当的 Prometheus 客户端调用。
type MetricsAdapter struct {
	metrics *Metrics
}

// NewMetricsAdapter creates a new adapter that wraps a concrete Prometheus Metrics object,
// satisfying the domain's Metrics interface.
// NewMetricsAdapter 创建一个包装具体 Prometheus Metrics 对象的新适配器，
// 满足域的 Metrics 接口。
func NewMetricsAdapter(metrics *Metrics) service.Metrics {
	return &MetricsAdapter{metrics: metrics}
}

// RecordAssessment delegates the call to the underlying Prometheus Metrics object.
// RecordAssessment 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordAssessment(tier models.RiskTier, probability float64, duration time.Duration) {
	a.metrics.RecordAssessment(tier, probability, duration)
}

// RecordImputation delegates the call to the underlying Prometheus Metrics object.
// RecordImputation 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordImputation(feature string) {
	a.metrics.RecordImputation(feature)
}

// RecordSideEffectFailure delegates the call to the underlying Prometheus Metrics object.
// RecordSideEffectFailure 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordSideEffectFailure(sink string) {
	a.metrics.RecordSideEffectFailure(sink)
}

// RecordRateLimitHit delegates the call to the underlying Prometheus Metrics object.
// RecordRateLimitHit 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordRateLimitHit(scope string) {
	a.metrics.RecordRateLimitHit(scope)
}
