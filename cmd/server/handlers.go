package main

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/karthikeya-ram/vocalguard/pkg/logger"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/storage"
)

// Server wires the classification service and audit log behind the HTTP
// boundary.
type Server struct {
	service vocalguard.Service
	audit   *storage.AuditLog
	config  *ServerConfig
	log     *logger.Logger
}

// ServerConfig holds the boundary configuration.
type ServerConfig struct {
	Port           int
	AuditDBPath    string
	ProfilePath    string
	APIKeys        []string
	AllowedOrigins []string
}

func NewServer(service vocalguard.Service, audit *storage.AuditLog, config *ServerConfig) *Server {
	return &Server{
		service: service,
		audit:   audit,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// handleVoiceDetection handles POST /api/voice-detection.
func (s *Server) handleVoiceDetection(c *gin.Context) {
	var req VoiceDetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "request body must include language, audioFormat and audioBase64",
		})
		return
	}

	audioBytes, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "audioBase64 is not valid base64 data",
		})
		return
	}

	start := time.Now()
	result, err := s.service.Classify(c.Request.Context(), vocalguard.Request{
		Audio:    audioBytes,
		Format:   req.AudioFormat,
		Language: req.Language,
	})
	latency := time.Since(start)

	if err != nil {
		kind := fault.KindOf(err)
		s.log.Warnf("classification failed: language=%s kind=%s: %v", req.Language, kind, err)
		s.record(storage.ClassificationRecord{
			Language:  req.Language,
			LatencyMs: latency.Milliseconds(),
			ErrorKind: string(kind),
		})
		c.JSON(httpStatusFor(kind), ErrorResponse{
			Status:  "error",
			Kind:    string(kind),
			Message: fault.PublicMessage(err),
		})
		return
	}

	s.record(storage.ClassificationRecord{
		Language:   result.Language,
		Label:      string(result.Label),
		Confidence: result.Confidence,
		Degraded:   result.Degraded,
		LatencyMs:  latency.Milliseconds(),
	})

	c.JSON(http.StatusOK, VoiceDetectionResponse{
		Status:          "success",
		Language:        req.Language,
		Classification:  string(result.Label),
		ConfidenceScore: result.Confidence,
		Explanation:     result.Explanation,
	})
}

// record writes an audit entry; audit failures never fail the request.
func (s *Server) record(rec storage.ClassificationRecord) {
	if s.audit == nil {
		return
	}
	rec.ID = uuid.NewString()
	if err := s.audit.Record(rec); err != nil {
		s.log.Errorf("audit record failed: %v", err)
	}
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Languages: s.service.Languages(),
	})
}

// handleMetrics handles GET /api/health/metrics.
func (s *Server) handleMetrics(c *gin.Context) {
	if s.audit == nil {
		c.JSON(http.StatusOK, MetricsResponse{Status: "ok"})
		return
	}
	stats, err := s.audit.Stats()
	if err != nil {
		s.log.Errorf("metrics aggregation failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:  "error",
			Message: "failed to aggregate metrics",
		})
		return
	}
	c.JSON(http.StatusOK, MetricsResponse{
		Status:       "ok",
		Total:        stats.Total,
		ByLabel:      stats.ByLabel,
		Errors:       stats.Errors,
		Degraded:     stats.Degraded,
		AvgLatencyMs: stats.AvgLatencyMs,
	})
}
