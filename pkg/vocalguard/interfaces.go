package vocalguard

import "context"

// Service classifies spoken-voice clips as synthetic or human. Requests are
// independent: implementations hold no mutable cross-request state beyond
// the read-only profile table.
type Service interface {
	Classify(ctx context.Context, req Request) (*Classification, error)
	Languages() []string
}

// Logger is the minimal logging surface the pipeline needs; pkg/logger
// satisfies it, as does anything with the same printf-style methods.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
