package detect

import (
	"errors"
	"math"
	"testing"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/profile"
)

type stubDetector struct {
	name  string
	score float64
	err   error
}

func (s *stubDetector) Name() string { return s.name }

func (s *stubDetector) Score(_ *feature.Vector) (Result, error) {
	if s.err != nil {
		return Result{}, s.err
	}
	return Result{
		Score:        s.score,
		Attributions: []Attribution{{Feature: s.name + "_cue", Cue: "stub cue", Weight: s.score - 0.5}},
	}, nil
}

// flatVector builds a full-length vector with every feature at the given
// z-score.
func flatVector(z float64) *feature.Vector {
	names := feature.FieldNames()
	values := make([]float64, len(names))
	for i := range values {
		values[i] = z
	}
	return &feature.Vector{Language: "english", SampleRate: 16000, Duration: 2.0, Values: values}
}

func weights(spectral, prosody, timbre float64) *profile.LanguageProfile {
	return &profile.LanguageProfile{
		Name: "english",
		DetectorWeights: map[string]float64{
			"spectral_artifact":   spectral,
			"prosody_naturalness": prosody,
			"timbre_embedding":    timbre,
		},
	}
}

func TestEnsembleScoreRange(t *testing.T) {
	ens := DefaultEnsemble()
	prof := weights(0.28, 0.50, 0.22)

	for _, z := range []float64{-4, -1, 0, 1, 4} {
		res, err := ens.Score(flatVector(z), prof)
		if err != nil {
			t.Fatalf("Score at z=%f failed: %v", z, err)
		}
		if res.Score < 0 || res.Score > 1 {
			t.Errorf("ensemble score at z=%f out of range: %f", z, res.Score)
		}
		if res.Degraded() {
			t.Errorf("full ensemble reported degraded at z=%f", z)
		}
		if math.Abs(res.AvailableWeight-1.0) > 1e-9 {
			t.Errorf("available weight = %f, want 1.0", res.AvailableWeight)
		}
	}
}

func TestEnsembleDetectorNames(t *testing.T) {
	names := DefaultEnsemble().Detectors()
	want := []string{"spectral_artifact", "prosody_naturalness", "timbre_embedding"}
	if len(names) != len(want) {
		t.Fatalf("detector count = %d, want %d", len(names), len(want))
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("detector %d = %q, want %q", i, names[i], n)
		}
	}
}

func TestEnsembleRenormalizesOnFailure(t *testing.T) {
	ens := NewEnsemble(
		&stubDetector{name: "spectral_artifact", score: 0.8},
		&stubDetector{name: "prosody_naturalness", err: errors.New("feature mismatch")},
		&stubDetector{name: "timbre_embedding", score: 0.6},
	)
	prof := weights(0.28, 0.50, 0.22)

	res, err := ens.Score(flatVector(0), prof)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if !res.Degraded() {
		t.Error("expected degraded result when a detector fails")
	}
	if len(res.Unavailable) != 1 || res.Unavailable[0] != "prosody_naturalness" {
		t.Errorf("unavailable = %v, want [prosody_naturalness]", res.Unavailable)
	}
	if math.Abs(res.AvailableWeight-0.50) > 1e-9 {
		t.Errorf("available weight = %f, want 0.50", res.AvailableWeight)
	}

	// Remaining weights renormalize: (0.28*0.8 + 0.22*0.6) / 0.50.
	want := (0.28*0.8 + 0.22*0.6) / 0.50
	if math.Abs(res.Score-want) > 1e-9 {
		t.Errorf("renormalized score = %f, want %f", res.Score, want)
	}
}

func TestEnsembleAllDetectorsFail(t *testing.T) {
	ens := NewEnsemble(
		&stubDetector{name: "spectral_artifact", err: errors.New("down")},
		&stubDetector{name: "prosody_naturalness", err: errors.New("down")},
		&stubDetector{name: "timbre_embedding", err: errors.New("down")},
	)

	_, err := ens.Score(flatVector(0), weights(0.28, 0.50, 0.22))
	if got := fault.KindOf(err); got != fault.ScoringUnavailable {
		t.Errorf("error kind = %s, want %s", got, fault.ScoringUnavailable)
	}
}

func TestEnsembleSkipsUnweightedDetectors(t *testing.T) {
	ens := NewEnsemble(
		&stubDetector{name: "spectral_artifact", score: 0.9},
		&stubDetector{name: "experimental_extra", score: 0.1},
	)
	prof := &profile.LanguageProfile{
		Name:            "english",
		DetectorWeights: map[string]float64{"spectral_artifact": 1.0},
	}

	res, err := ens.Score(flatVector(0), prof)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if res.Degraded() {
		t.Error("unweighted detector must not count as unavailable")
	}
	if math.Abs(res.Score-0.9) > 1e-9 {
		t.Errorf("score = %f, want 0.9", res.Score)
	}
}

func TestEnsembleAttributionOrdering(t *testing.T) {
	prof := weights(0.28, 0.50, 0.22)
	res, err := DefaultEnsemble().Score(flatVector(1.5), prof)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if len(res.Attributions) == 0 {
		t.Fatal("expected attributions")
	}
	for i := 1; i < len(res.Attributions); i++ {
		prev := math.Abs(res.Attributions[i-1].Weight)
		cur := math.Abs(res.Attributions[i].Weight)
		if cur > prev+1e-12 {
			t.Errorf("attributions not sorted by |weight|: %f before %f", prev, cur)
		}
	}
	for _, a := range res.Attributions {
		if a.Cue == "" || a.Feature == "" {
			t.Errorf("attribution missing cue or feature: %+v", a)
		}
	}
}

func TestDetectorScoresMonotone(t *testing.T) {
	// All detector model weights are negative, so raising every z-score
	// must not raise any detector score.
	for _, d := range []Detector{NewSpectralArtifact(), NewProsodyNaturalness()} {
		low, err := d.Score(flatVector(-2))
		if err != nil {
			t.Fatalf("%s at z=-2 failed: %v", d.Name(), err)
		}
		high, err := d.Score(flatVector(2))
		if err != nil {
			t.Fatalf("%s at z=2 failed: %v", d.Name(), err)
		}
		if high.Score >= low.Score {
			t.Errorf("%s: score did not fall as features rose above baseline: %f vs %f",
				d.Name(), high.Score, low.Score)
		}
	}
}

func TestDetectorMissingFeature(t *testing.T) {
	short := &feature.Vector{Values: []float64{0, 0}}
	for _, d := range DefaultEnsemble().detectors {
		if _, err := d.Score(short); err == nil {
			t.Errorf("%s accepted a truncated vector", d.Name())
		}
	}
}
