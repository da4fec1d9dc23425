// Package feature converts a normalized waveform into the fixed, ordered
// acoustic feature vector the detectors consume. Every feature is z-scored
// against the language profile's baselines before it leaves this package, so
// downstream thresholds compare like with like across languages.
package feature

import (
	"fmt"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/audio"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/profile"
)

// SilenceFloorRMS is the minimum overall level required before acoustic cues
// are considered extractable.
const SilenceFloorRMS = 1e-4

// fieldNames fixes the vector length and field order. The order is part of
// the feature set version and never varies at runtime.
var fieldNames = []string{
	"spectral_flatness_mean",
	"spectral_flatness_var",
	"spectral_centroid_mean",
	"spectral_centroid_var",
	"spectral_rolloff_mean",
	"spectral_flux_mean",
	"zero_crossing_rate",
	"rms_energy_mean",
	"rms_energy_var",
	"pitch_mean",
	"pitch_var",
	"jitter",
	"shimmer",
	"voiced_ratio",
	"embedding_0",
	"embedding_1",
	"embedding_2",
	"embedding_3",
	"embedding_4",
	"embedding_5",
	"embedding_6",
	"embedding_7",
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fieldNames))
	for i, name := range fieldNames {
		m[name] = i
	}
	return m
}()

// FieldNames returns the ordered feature names; the returned slice must not
// be modified.
func FieldNames() []string {
	return fieldNames
}

// Vector is a clip's z-scored feature vector plus its metadata.
type Vector struct {
	Language   string
	SampleRate int
	Duration   float64
	Values     []float64
}

// Get returns the z-scored value of a named feature.
func (v *Vector) Get(name string) (float64, bool) {
	idx, ok := fieldIndex[name]
	if !ok || idx >= len(v.Values) {
		return 0, false
	}
	return v.Values[idx], true
}

// Extract computes the raw feature set from a waveform and normalizes it
// against the given language profile. Deterministic: the same waveform and
// profile always produce the same vector.
func Extract(w *audio.Waveform, prof *profile.LanguageProfile) (*Vector, error) {
	const op = "feature.Extract"

	if w.RMS() < SilenceFloorRMS {
		return nil, fault.New(fault.InsufficientSignal, op,
			"clip is silent or too quiet for acoustic analysis")
	}

	mags, raw := stft(w.Samples)
	if len(mags) == 0 {
		return nil, fault.New(fault.InsufficientSignal, op,
			"clip is too short for spectral analysis")
	}

	spec := computeSpectralStats(mags, w.SampleRate)
	pros := computeProsodyStats(raw, w.SampleRate)
	emb := timbreEmbedding(mags)

	rawValues := map[string]float64{
		"spectral_flatness_mean": spec.flatnessMean,
		"spectral_flatness_var":  spec.flatnessVar,
		"spectral_centroid_mean": spec.centroidMean,
		"spectral_centroid_var":  spec.centroidVar,
		"spectral_rolloff_mean":  spec.rolloffMean,
		"spectral_flux_mean":     spec.fluxMean,
		"zero_crossing_rate":     zeroCrossingRate(w.Samples),
		"rms_energy_mean":        pros.rmsMean,
		"rms_energy_var":         pros.rmsVar,
		"pitch_mean":             pros.pitchMean,
		"pitch_var":              pros.pitchVar,
		"jitter":                 pros.jitter,
		"shimmer":                pros.shimmer,
		"voiced_ratio":           pros.voicedRatio,
	}
	for i, e := range emb {
		rawValues[fmt.Sprintf("embedding_%d", i)] = e
	}

	values := make([]float64, len(fieldNames))
	for i, name := range fieldNames {
		z, err := prof.Normalize(name, rawValues[name])
		if err != nil {
			// Profile completeness is checked at startup; reaching this
			// means the running config was not the one validated.
			return nil, fault.Wrap(fault.Internal, op, "feature normalization failed", err)
		}
		values[i] = z
	}

	return &Vector{
		Language:   prof.Name,
		SampleRate: w.SampleRate,
		Duration:   w.Duration(),
		Values:     values,
	}, nil
}
