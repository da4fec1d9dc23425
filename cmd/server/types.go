package main

import (
	"net/http"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
)

// VoiceDetectionRequest is the body of POST /api/voice-detection.
type VoiceDetectionRequest struct {
	// Language is the declared spoken language of the clip.
	Language string `json:"language" binding:"required"`

	// AudioFormat is the declared codec tag ("mp3" or "wav").
	AudioFormat string `json:"audioFormat" binding:"required"`

	// AudioBase64 is the base64-encoded audio payload.
	AudioBase64 string `json:"audioBase64" binding:"required"`
}

// VoiceDetectionResponse is the success envelope.
type VoiceDetectionResponse struct {
	Status          string  `json:"status"`
	Language        string  `json:"language"`
	Classification  string  `json:"classification"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Explanation     string  `json:"explanation"`
}

// ErrorResponse is the error envelope. Kind is the stable machine-readable
// error identifier; Message is safe for callers.
type ErrorResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string   `json:"status"`
	Languages []string `json:"languages"`
}

// MetricsResponse is the body of GET /api/health/metrics, aggregated from
// the audit log.
type MetricsResponse struct {
	Status       string           `json:"status"`
	Total        int64            `json:"total"`
	ByLabel      map[string]int64 `json:"byLabel"`
	Errors       int64            `json:"errors"`
	Degraded     int64            `json:"degraded"`
	AvgLatencyMs float64          `json:"avgLatencyMs"`
}

// httpStatusFor maps the pipeline error taxonomy onto HTTP status codes.
func httpStatusFor(kind fault.Kind) int {
	switch kind {
	case fault.EmptyPayload, fault.UnsupportedFormat, fault.DurationOutOfRange, fault.UnsupportedLanguage:
		return http.StatusBadRequest
	case fault.PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case fault.InsufficientSignal:
		return http.StatusUnprocessableEntity
	case fault.ScoringUnavailable:
		return http.StatusServiceUnavailable
	case fault.ProcessingTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
