// Package calibrate maps raw ensemble scores to one of exactly two labels
// and a calibrated confidence for that label, using the per-language logistic
// curve and threshold pair from the profile.
package calibrate

import (
	"math"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/profile"
)

type Label string

const (
	AIGenerated Label = "AI_GENERATED"
	Human       Label = "HUMAN"
)

// Calibrate converts a raw ensemble score into (label, confidence).
//
// The logistic curve yields a probability-like estimate that the clip is
// synthetic, strictly monotonic in the raw score. availableWeight is the
// ensemble's ran-detector weight share: values below 1 shrink the estimate
// toward 0.5, so a degraded ensemble always reports strictly lower
// confidence than a full one for the same lean.
//
// The returned confidence is always the probability of the returned label,
// never the raw synthetic probability, so callers can compare it across
// languages and across both classes.
func Calibrate(ensembleScore, availableWeight float64, prof *profile.LanguageProfile) (Label, float64) {
	c := prof.Calibration

	p := 1 / (1 + math.Exp(-c.Slope*(ensembleScore-c.Midpoint)))

	if availableWeight < 0 {
		availableWeight = 0
	} else if availableWeight > 1 {
		availableWeight = 1
	}
	p = 0.5 + (p-0.5)*availableWeight

	label := resolveLabel(p, c)

	confidence := p
	if label == Human {
		confidence = 1 - p
	}
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	return label, confidence
}

// resolveLabel applies the threshold pair. Estimates between the thresholds
// fall to whichever side of the threshold midpoint they sit on, so exactly
// two labels are ever produced.
func resolveLabel(p float64, c profile.Calibration) Label {
	switch {
	case p >= c.ThresholdAI:
		return AIGenerated
	case p <= c.ThresholdHuman:
		return Human
	default:
		mid := (c.ThresholdAI + c.ThresholdHuman) / 2
		if p >= mid {
			return AIGenerated
		}
		return Human
	}
}
