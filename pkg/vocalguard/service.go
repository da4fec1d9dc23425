// Package vocalguard implements the audio authenticity classification
// pipeline: decode → feature extraction → language-aware scoring →
// calibration → explanation. The service is a pure function of
// (audio bytes, codec, language); the only shared state is the read-only
// language profile table built at construction time.
package vocalguard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/karthikeya-ram/vocalguard/pkg/logger"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/audio"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/calibrate"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/detect"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/explain"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/profile"
)

type pipelineService struct {
	profiles *profile.Registry
	ensemble *detect.Ensemble
	sem      *semaphore.Weighted
	cfg      *Config
	log      Logger
}

// New builds the classification service. Profile loading and cross-checking
// happen here, before any request is accepted: a broken configuration fails
// construction instead of failing requests later.
func New(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	reg := cfg.Profiles
	var err error
	switch {
	case reg != nil:
	case cfg.ProfilePath != "":
		reg, err = profile.LoadFile(cfg.ProfilePath)
	default:
		reg, err = profile.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading language profiles: %w", err)
	}

	detectors := cfg.Detectors
	var ensemble *detect.Ensemble
	if len(detectors) > 0 {
		ensemble = detect.NewEnsemble(detectors...)
	} else {
		ensemble = detect.DefaultEnsemble()
	}

	if err := validateStartup(reg, ensemble); err != nil {
		return nil, err
	}

	return &pipelineService{
		profiles: reg,
		ensemble: ensemble,
		sem:      semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		cfg:      cfg,
		log:      cfg.Logger,
	}, nil
}

// validateStartup cross-checks the profile table against the feature set and
// the detector roster so per-request lookups cannot fail on configuration.
func validateStartup(reg *profile.Registry, ensemble *detect.Ensemble) error {
	known := make(map[string]bool)
	for _, name := range ensemble.Detectors() {
		known[name] = true
	}

	for _, lang := range reg.Languages() {
		prof, err := reg.Route(lang)
		if err != nil {
			return err
		}
		weightedKnown := false
		for name := range prof.DetectorWeights {
			if !known[name] {
				return fmt.Errorf("profile %q weights unknown detector %q", lang, name)
			}
			weightedKnown = true
		}
		if !weightedKnown {
			return fmt.Errorf("profile %q weights no registered detector", lang)
		}
		for _, feat := range feature.FieldNames() {
			if _, err := prof.Normalize(feat, 0); err != nil {
				return fmt.Errorf("profile %q: %w", lang, err)
			}
		}
	}
	return nil
}

// Classify runs the full pipeline for one request. Any failure is returned
// as a typed fault; panics are recovered at this boundary and reported as
// internal errors, never propagated to the caller.
func (s *pipelineService) Classify(ctx context.Context, req Request) (result *Classification, err error) {
	const op = "vocalguard.Classify"

	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("recovered panic in classification pipeline: %v", r)
			result = nil
			err = fault.Newf(fault.Internal, op, "internal processing error")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	// Route first: no point decoding audio for a language we will refuse.
	prof, err := s.profiles.Route(req.Language)
	if err != nil {
		return nil, err
	}

	// The semaphore caps in-flight decoded waveforms to bound memory.
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, ctxFault(op, err)
	}
	defer s.sem.Release(1)

	w, err := audio.Decode(ctx, req.Audio, req.Format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, ctxFault(op, err)
	}

	vec, err := feature.Extract(w, prof)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, ctxFault(op, err)
	}

	ens, err := s.ensemble.Score(vec, prof)
	if err != nil {
		return nil, err
	}
	if ens.Degraded() {
		s.log.Warnf("scoring degraded for language=%s: detectors unavailable: %v",
			prof.Name, ens.Unavailable)
	}

	label, confidence := calibrate.Calibrate(ens.Score, ens.AvailableWeight, prof)
	explanation := explain.Render(label, ens.Attributions, len(ens.Unavailable))

	s.log.Debugf("classified language=%s label=%s confidence=%.3f degraded=%t",
		prof.Name, label, confidence, ens.Degraded())

	return &Classification{
		Language:    prof.Name,
		Label:       label,
		Confidence:  confidence,
		Explanation: explanation,
		Degraded:    ens.Degraded(),
	}, nil
}

// Languages returns the routable language names.
func (s *pipelineService) Languages() []string {
	return s.profiles.Languages()
}

func ctxFault(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Wrap(fault.ProcessingTimeout, op, "processing deadline exceeded", err)
	}
	return fault.Wrap(fault.Internal, op, "request canceled", err)
}
