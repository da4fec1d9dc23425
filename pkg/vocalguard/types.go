package vocalguard

import "github.com/karthikeya-ram/vocalguard/pkg/vocalguard/calibrate"

// Request is one classification unit of work: an encoded audio buffer plus
// the caller-declared codec and language.
type Request struct {
	Audio    []byte
	Format   string
	Language string
}

// Classification is the pipeline's result record. Produced exactly once per
// request, immutable, and never persisted by the pipeline itself.
type Classification struct {
	Language    string
	Label       calibrate.Label
	Confidence  float64
	Explanation string

	// Degraded is set when the ensemble ran without one or more detectors.
	// The condition is also reported inline in the explanation.
	Degraded bool
}
