// Package detect runs the authenticity detectors and combines them into a
// single ensemble score. Detectors are interchangeable implementations of one
// contract so new signals can be added without touching routing or
// calibration.
package detect

import (
	"fmt"
	"math"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"
)

// Attribution records how strongly one acoustic cue pushed the score toward
// the synthetic side (positive weight) or the human side (negative weight).
type Attribution struct {
	Feature string
	Cue     string
	Weight  float64
}

// Result is a single detector's output: a raw score in [0,1] where 1 means
// "more likely synthetic", plus the cue contributions behind it.
type Result struct {
	Score        float64
	Attributions []Attribution
}

// Detector scores a feature vector for synthesis likelihood. Name must match
// the detector's weight key in the language profiles.
type Detector interface {
	Name() string
	Score(vec *feature.Vector) (Result, error)
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// zscore pulls a named z-scored feature out of the vector, erroring on
// feature-set mismatches so a detector fails cleanly instead of scoring
// garbage.
func zscore(vec *feature.Vector, name string) (float64, error) {
	v, ok := vec.Get(name)
	if !ok {
		return 0, fmt.Errorf("feature %q missing from vector", name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("feature %q is not finite", name)
	}
	return v, nil
}

// linearTerm is one weighted feature inside a detector's linear model.
type linearTerm struct {
	feature string
	cue     string
	weight  float64
}

// scoreLinear evaluates a logistic-of-linear detector model and reports the
// signed contribution of each term.
func scoreLinear(vec *feature.Vector, terms []linearTerm) (Result, error) {
	var sum float64
	attrs := make([]Attribution, 0, len(terms))
	for _, t := range terms {
		z, err := zscore(vec, t.feature)
		if err != nil {
			return Result{}, err
		}
		contrib := t.weight * z
		sum += contrib
		attrs = append(attrs, Attribution{Feature: t.feature, Cue: t.cue, Weight: contrib})
	}
	return Result{Score: logistic(sum), Attributions: attrs}, nil
}
