package vocalguard

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/audio"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/detect"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"
)

// wavClip encodes mono samples as a 16-bit WAV buffer at the working rate.
func wavClip(t *testing.T, samples []float64) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating temp wav: %v", err)
	}
	w := &audio.Waveform{Samples: samples, SampleRate: audio.WorkingSampleRate}
	if err := audio.EncodeWAV(w, f); err != nil {
		f.Close()
		t.Fatalf("encoding wav: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp wav: %v", err)
	}
	return data
}

// syntheticClip is a machine-steady voice proxy: constant pitch, constant
// amplitude, no micro-variation.
func syntheticClip(seconds float64) []float64 {
	n := int(seconds * audio.WorkingSampleRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.4 * math.Sin(2*math.Pi*140*float64(i)/audio.WorkingSampleRate)
	}
	return out
}

// naturalClip is a live-voice proxy: vibrato around 175 Hz, slow loudness
// swells, and deterministic broadband noise.
func naturalClip(seconds float64) []float64 {
	n := int(seconds * audio.WorkingSampleRate)
	out := make([]float64, n)

	var phase float64
	noise := uint32(0x2545f491)
	for i := range out {
		tm := float64(i) / audio.WorkingSampleRate
		freq := 175 + 35*math.Sin(2*math.Pi*5*tm)
		phase += 2 * math.Pi * freq / audio.WorkingSampleRate

		amp := 0.4 * (1 + 0.5*math.Sin(2*math.Pi*4*tm))

		noise = noise*1664525 + 1013904223
		nz := (float64(noise>>8)/float64(1<<24))*2 - 1

		out[i] = amp*math.Sin(phase) + 0.15*nz
	}
	return out
}

type failingDetector struct {
	name string
}

func (d *failingDetector) Name() string { return d.name }

func (d *failingDetector) Score(_ *feature.Vector) (detect.Result, error) {
	return detect.Result{}, errors.New("model unavailable")
}

func newTestService(t *testing.T, opts ...Option) Service {
	t.Helper()

	svc, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return svc
}

func TestClassifySyntheticClip(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Classify(context.Background(), Request{
		Audio:    wavClip(t, syntheticClip(3.0)),
		Format:   "wav",
		Language: "tamil",
	})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if res.Label != "AI_GENERATED" {
		t.Errorf("label = %s, want AI_GENERATED", res.Label)
	}
	if res.Confidence < 0.8 {
		t.Errorf("confidence = %f, want >= 0.8 for an obviously synthetic clip", res.Confidence)
	}
	if res.Language != "tamil" {
		t.Errorf("language = %q, want tamil", res.Language)
	}
	if res.Explanation == "" {
		t.Error("explanation is empty")
	}
	if res.Degraded {
		t.Error("full ensemble reported degraded")
	}
}

func TestClassifyNaturalClip(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Classify(context.Background(), Request{
		Audio:    wavClip(t, naturalClip(3.0)),
		Format:   "wav",
		Language: "hindi",
	})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if res.Label != "HUMAN" {
		t.Errorf("label = %s, want HUMAN", res.Label)
	}
	if res.Confidence < 0.8 {
		t.Errorf("confidence = %f, want >= 0.8 for an obviously natural clip", res.Confidence)
	}
	if !strings.Contains(res.Explanation, "natural") {
		t.Errorf("explanation does not reference natural cues: %q", res.Explanation)
	}
}

func TestClassifySilentClip(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Classify(context.Background(), Request{
		Audio:    wavClip(t, make([]float64, 3*audio.WorkingSampleRate)),
		Format:   "wav",
		Language: "english",
	})
	if got := fault.KindOf(err); got != fault.InsufficientSignal {
		t.Errorf("error kind = %s, want %s", got, fault.InsufficientSignal)
	}
}

func TestClassifyRoutesBeforeDecoding(t *testing.T) {
	svc := newTestService(t)

	// Empty audio with an unknown language: the language refusal must win,
	// proving routing happens before any payload inspection.
	_, err := svc.Classify(context.Background(), Request{Language: "klingon"})
	if got := fault.KindOf(err); got != fault.UnsupportedLanguage {
		t.Errorf("error kind = %s, want %s", got, fault.UnsupportedLanguage)
	}
}

func TestClassifyExpiredContext(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.Classify(ctx, Request{
		Audio:    wavClip(t, syntheticClip(2.0)),
		Format:   "wav",
		Language: "english",
	})
	if got := fault.KindOf(err); got != fault.ProcessingTimeout {
		t.Errorf("error kind = %s, want %s", got, fault.ProcessingTimeout)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	svc := newTestService(t)
	req := Request{
		Audio:    wavClip(t, syntheticClip(2.0)),
		Format:   "wav",
		Language: "telugu",
	}

	first, err := svc.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("first Classify failed: %v", err)
	}
	second, err := svc.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("second Classify failed: %v", err)
	}

	if first.Label != second.Label {
		t.Errorf("label changed across identical requests: %s vs %s", first.Label, second.Label)
	}
	if first.Confidence != second.Confidence {
		t.Errorf("confidence changed across identical requests: %f vs %f",
			first.Confidence, second.Confidence)
	}
	if first.Explanation != second.Explanation {
		t.Errorf("explanation changed across identical requests: %q vs %q",
			first.Explanation, second.Explanation)
	}
}

func TestClassifyDegradedEnsemble(t *testing.T) {
	clip := wavClip(t, syntheticClip(3.0))
	req := Request{Audio: clip, Format: "wav", Language: "malayalam"}

	full := newTestService(t)
	degraded := newTestService(t, WithDetectors(
		detect.NewSpectralArtifact(),
		detect.NewProsodyNaturalness(),
		&failingDetector{name: "timbre_embedding"},
	))

	fullRes, err := full.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("full Classify failed: %v", err)
	}
	degRes, err := degraded.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("degraded Classify failed: %v", err)
	}

	if !degRes.Degraded {
		t.Error("degraded flag not set when a detector is down")
	}
	if degRes.Label != fullRes.Label {
		t.Fatalf("labels disagree: full=%s degraded=%s", fullRes.Label, degRes.Label)
	}
	if degRes.Confidence >= fullRes.Confidence {
		t.Errorf("degraded confidence %f not strictly below full confidence %f",
			degRes.Confidence, fullRes.Confidence)
	}
	if !strings.Contains(degRes.Explanation, "Reduced confidence") {
		t.Errorf("degraded explanation missing the reduced-confidence note: %q", degRes.Explanation)
	}
}

func TestClassifyAllDetectorsDown(t *testing.T) {
	svc := newTestService(t, WithDetectors(
		&failingDetector{name: "spectral_artifact"},
		&failingDetector{name: "prosody_naturalness"},
		&failingDetector{name: "timbre_embedding"},
	))

	_, err := svc.Classify(context.Background(), Request{
		Audio:    wavClip(t, syntheticClip(2.0)),
		Format:   "wav",
		Language: "english",
	})
	if got := fault.KindOf(err); got != fault.ScoringUnavailable {
		t.Errorf("error kind = %s, want %s", got, fault.ScoringUnavailable)
	}
}

func TestServiceLanguages(t *testing.T) {
	svc := newTestService(t)

	langs := svc.Languages()
	if len(langs) != 5 {
		t.Fatalf("Languages() returned %d entries, want 5", len(langs))
	}
	seen := make(map[string]bool)
	for _, l := range langs {
		seen[l] = true
	}
	for _, want := range []string{"tamil", "english", "hindi", "malayalam", "telugu"} {
		if !seen[want] {
			t.Errorf("Languages() missing %q", want)
		}
	}
}

func TestNewRejectsBrokenConfig(t *testing.T) {
	t.Run("unknown detector in weights", func(t *testing.T) {
		_, err := New(WithDetectors(&failingDetector{name: "something_else"}))
		if err == nil {
			t.Error("expected startup validation failure for unmatched detector roster")
		}
	})

	t.Run("missing profile file", func(t *testing.T) {
		_, err := New(WithProfilePath(filepath.Join(t.TempDir(), "missing.yaml")))
		if err == nil {
			t.Error("expected error for missing profile file")
		}
	})
}
