// Package constants defines system-wide constants for the GDM risk service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ServiceName is reported to tracing backends and in health responses.
const ServiceName = "gdm-risk-service"

// ================================================================================
// Error Code Constants
// ================================================================================

// ErrorCode represents a machine-readable error code returned by the API
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates a malformed or out-of-bounds request
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the requested resource does not exist
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeRateLimitExceeded indicates the caller exceeded its request budget
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"

	// ErrCodeServiceUnavailable indicates a dependency is not ready
	ErrCodeServiceUnavailable ErrorCode = "service_unavailable"

	// ErrCodeInternal indicates an unexpected server-side condition
	ErrCodeInternal ErrorCode = "internal_error"

	// ErrCodeArtifactInvalid indicates a model artifact failed to load or verify
	ErrCodeArtifactInvalid ErrorCode = "artifact_invalid"

	// ErrCodeInvalidConfig indicates the service configuration is unusable
	ErrCodeInvalidConfig ErrorCode = "invalid_config"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type for values stored in a request context
type ContextKey string

const (
	// ContextKeyRequestID carries the X-Request-ID of the current request
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID carries the OpenTelemetry trace id as a string
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyLogger carries a request-scoped logger
	ContextKeyLogger ContextKey = "logger"
)

// ================================================================================
// HTTP Constants
// ================================================================================

const (
	// HeaderRequestID is the header used to propagate request ids
	HeaderRequestID = "X-Request-ID"

	// HeaderRateLimitLimit reports the per-window request budget
	HeaderRateLimitLimit = "X-RateLimit-Limit"

	// HeaderRateLimitRemaining reports the remaining requests in the window
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"

	// HeaderRetryAfter tells the client when to retry after a 429
	HeaderRetryAfter = "Retry-After"
)

// ================================================================================
// Rate Limiting Constants
// ================================================================================

// RateLimitScope defines the scope level for rate limiting
type RateLimitScope string

const (
	// RateLimitScopeIP applies per client IP address
	RateLimitScopeIP RateLimitScope = "ip"

	// RateLimitScopeGlobal applies to all requests
	RateLimitScopeGlobal RateLimitScope = "global"
)

const (
	// DefaultRateLimitPerMinute is the default assessments per minute per client
	DefaultRateLimitPerMinute = 60

	// RateLimitWindow is the period over which the request budget applies
	RateLimitWindow = 1 * time.Minute

	// CacheKeyPrefixRateLimit is the prefix for rate limiting counter entries
	CacheKeyPrefixRateLimit = "gdm:ratelimit:"
)

// ================================================================================
// Artifact Constants
// ================================================================================

const (
	// ScalerFileName is the feature scaler artifact file
	ScalerFileName = "scaler.json"

	// ClassifierFileName is the binary classifier artifact file
	ClassifierFileName = "classifier.json"

	// ExplainerFileName is the attribution explainer artifact file
	ExplainerFileName = "explainer.json"

	// ArtifactVersionLength is the number of hex characters kept from the file digest
	ArtifactVersionLength = 12
)

// ================================================================================
// Event Constants
// ================================================================================

const (
	// DefaultAssessmentTopic is the Kafka topic for completed assessments
	DefaultAssessmentTopic = "gdm.assessments"

	// EventTypeAssessmentCompleted is the event type of a published assessment
	EventTypeAssessmentCompleted = "assessment.completed"
)
