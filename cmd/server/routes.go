package main

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter registers middleware and routes.
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.log))
	router.Use(cors.New(corsConfig(s.config.AllowedOrigins)))

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	api.Use(apiKeyMiddleware(s.config.APIKeys))
	{
		api.POST("/voice-detection", s.handleVoiceDetection)
		api.GET("/health/metrics", s.handleMetrics)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-API-Key"},
		MaxAge:       time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	router := s.setupRouter()

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.log.Infof("vocalguard server starting on %s", addr)
	s.log.Infof("   Audit DB: %s", s.config.AuditDBPath)
	s.log.Infof("   Languages: %v", s.service.Languages())
	s.log.Infof("Endpoints:")
	s.log.Infof("   GET  /health                 - Health check")
	s.log.Infof("   GET  /api/health/metrics     - Classification metrics")
	s.log.Infof("   POST /api/voice-detection    - Classify a voice clip")

	return router.Run(addr)
}
