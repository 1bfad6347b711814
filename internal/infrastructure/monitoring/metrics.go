package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/turtacn/gdmrisk/internal/domain/models"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	Assessments         *prometheus.CounterVec
	AssessmentProb      prometheus.Histogram
	AssessmentLatency   prometheus.Histogram
	ImputedFields       *prometheus.CounterVec
	SideEffectFailures  *prometheus.CounterVec
	RateLimitHits       *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg. A nil reg
// uses the default Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Assessments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdm_assessments_total",
				Help: "Total number of completed risk assessments by tier.",
			},
			[]string{"tier"},
		),
		AssessmentProb: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gdm_assessment_probability",
				Help:    "Distribution of predicted GDM probabilities.",
				Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.75, 0.9, 1},
			},
		),
		AssessmentLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gdm_assessment_duration_seconds",
				Help:    "Latency of the assessment pipeline.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		ImputedFields: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdm_imputed_fields_total",
				Help: "Total number of feature values replaced by their population median.",
			},
			[]string{"feature"},
		),
		SideEffectFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdm_side_effect_failures_total",
				Help: "Total number of failed audit writes and event publishes.",
			},
			[]string{"sink"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdm_rate_limit_hits_total",
				Help: "Total number of rate limit hits.",
			},
			[]string{"scope"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdm_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gdm_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordAssessment records metrics for a completed assessment.
func (m *Metrics) RecordAssessment(tier models.RiskTier, probability float64, duration time.Duration) {
	m.Assessments.WithLabelValues(string(tier)).Inc()
	m.AssessmentProb.Observe(probability)
	m.AssessmentLatency.Observe(duration.Seconds())
}

// RecordImputation records one imputed feature.
func (m *Metrics) RecordImputation(feature string) {
	m.ImputedFields.WithLabelValues(feature).Inc()
}

// RecordSideEffectFailure records a failed audit or event sink.
func (m *Metrics) RecordSideEffectFailure(sink string) {
	m.SideEffectFailures.WithLabelValues(sink).Inc()
}

// RecordRateLimitHit records a rate limit hit.
func (m *Metrics) RecordRateLimitHit(scope string) {
	m.RateLimitHits.WithLabelValues(scope).Inc()
}
