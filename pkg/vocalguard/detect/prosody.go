package detect

import "github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"

// ProsodyNaturalness targets the prosodic fingerprint of synthesis: pitch
// contours with too little variation and voicing cycles that are too regular
// (low jitter and shimmer) compared to natural speech in the same language.
type ProsodyNaturalness struct{}

func NewProsodyNaturalness() *ProsodyNaturalness { return &ProsodyNaturalness{} }

func (d *ProsodyNaturalness) Name() string { return "prosody_naturalness" }

func (d *ProsodyNaturalness) Score(vec *feature.Vector) (Result, error) {
	return scoreLinear(vec, []linearTerm{
		{feature: "pitch_var", cue: "pitch variation", weight: -1.0},
		{feature: "jitter", cue: "voicing regularity", weight: -0.8},
		{feature: "shimmer", cue: "loudness regularity", weight: -0.6},
	})
}
