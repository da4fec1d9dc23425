package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/karthikeya-ram/vocalguard/pkg/logger"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/storage"
)

var (
	port           int
	profilePath    string
	auditDBPath    string
	allowedOrigins string
	maxConcurrent  int
	timeoutSec     int
)

func init() {
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&profilePath, "profiles", os.Getenv("VOCALGUARD_PROFILES"), "Path to language profile YAML (empty = embedded defaults)")
	flag.StringVar(&auditDBPath, "audit-db", getEnvOrDefault("VOCALGUARD_AUDIT_DB", storage.DefaultDBFile), "Path to the SQLite audit database")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
	flag.IntVar(&maxConcurrent, "max-concurrent", 4, "Maximum concurrent in-flight audio decodes")
	flag.IntVar(&timeoutSec, "timeout", 15, "Per-request processing timeout in seconds")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Load .env when present; the environment wins otherwise.
	_ = godotenv.Load()
	flag.Parse()

	log := logger.GetLogger()

	var opts []vocalguard.Option
	if profilePath != "" {
		opts = append(opts, vocalguard.WithProfilePath(profilePath))
	}
	opts = append(opts,
		vocalguard.WithLogger(log),
		vocalguard.WithMaxConcurrent(maxConcurrent),
		vocalguard.WithTimeout(time.Duration(timeoutSec)*time.Second),
	)

	service, err := vocalguard.New(opts...)
	if err != nil {
		log.Fatalf("Failed to create classification service: %v", err)
	}

	audit, err := storage.NewAuditLog(auditDBPath)
	if err != nil {
		log.Fatalf("Failed to open audit log: %v", err)
	}
	defer audit.Close()

	apiKeys := splitAndTrim(os.Getenv("VOCALGUARD_API_KEYS"))
	if len(apiKeys) == 0 {
		log.Warnf("VOCALGUARD_API_KEYS is unset: API key authentication is disabled")
	}

	server := NewServer(service, audit, &ServerConfig{
		Port:           port,
		AuditDBPath:    auditDBPath,
		ProfilePath:    profilePath,
		APIKeys:        apiKeys,
		AllowedOrigins: splitAndTrim(allowedOrigins),
	})
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func splitAndTrim(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
