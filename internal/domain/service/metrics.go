// Package service holds the risk-scoring and explanation pipeline.
package service

import (
	"time"

	"github.com/turtacn/gdmrisk/internal/domain/models"
)

// Metrics defines the interface for collecting assessment metrics.
// This abstraction allows the application layer to remain independent of the specific monitoring implementation (e.g., Prometheus).
// Metrics 定义了收集评估指标的接口。
// 这种抽象使应用层能够独立于具体的监控实现（例如 Prometheus）。
type Metrics interface {
	// RecordAssessment records a completed assessment with its tier, probability and latency.
	// RecordAssessment 记录一次完成的评估，包括风险等级、概率和耗时。
	RecordAssessment(tier models.RiskTier, probability float64, duration time.Duration)

	// RecordImputation records that a feature was replaced by its median.
	// RecordImputation 记录某个特征被中位数替换。
	RecordImputation(feature string)

	// RecordSideEffectFailure records a failed audit write or event publish.
	// RecordSideEffectFailure 记录审计写入或事件发布失败。
	RecordSideEffectFailure(sink string)

	// RecordRateLimitHit records an event when a rate limit is triggered.
	// RecordRateLimitHit 记录触发速率限制的事件。
	RecordRateLimitHit(scope string)
}

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

func (NoopMetrics) RecordAssessment(models.RiskTier, float64, time.Duration) {}
func (NoopMetrics) RecordImputation(string)                                  {}
func (NoopMetrics) RecordSideEffectFailure(string)                           {}
func (NoopMetrics) RecordRateLimitHit(string)                                {}
