// Package explain renders a short human-readable rationale from the cue
// attributions behind a classification. Output is templated from a fixed cue
// vocabulary: no raw feature values and no internal detector identifiers ever
// appear in it.
package explain

import (
	"fmt"
	"math"
	"strings"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/calibrate"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/detect"
)

// TopCues is how many dominant cue categories a rationale references.
const TopCues = 2

// cuePhrases maps a cue category to its rendering for each label direction.
var cuePhrases = map[string]struct{ synthetic, human string }{
	"pitch variation":     {"an unusually flat pitch contour", "natural pitch movement"},
	"voicing regularity":  {"overly regular voicing cycles", "organic cycle-to-cycle voicing variation"},
	"loudness regularity": {"machine-steady loudness", "natural loudness fluctuation"},
	"spectral dynamics":   {"unnaturally static spectral movement", "lively spectral movement"},
	"spectral texture":    {"an artificially smooth spectral texture", "varied spectral texture"},
	"loudness dynamics":   {"compressed loudness dynamics", "expressive loudness dynamics"},
	"timbral balance":     {"an atypical timbral balance", "a timbral balance consistent with live speech"},
}

// Render produces the rationale for a classification. Deterministic given the
// same attributions, always non-empty, and bounded by the fixed vocabulary.
func Render(label calibrate.Label, attrs []detect.Attribution, unavailable int) string {
	phrases := topPhrases(label, attrs)

	var sb strings.Builder
	switch {
	case len(phrases) == 0:
		// No usable attribution, e.g. a fully neutral vector.
		if label == calibrate.AIGenerated {
			sb.WriteString("Overall acoustic patterns are more consistent with synthetic speech.")
		} else {
			sb.WriteString("Overall acoustic patterns are consistent with natural human speech.")
		}
	case label == calibrate.AIGenerated:
		fmt.Fprintf(&sb, "Acoustic analysis detected %s, characteristic of synthetic speech.",
			joinPhrases(phrases))
	default:
		fmt.Fprintf(&sb, "Acoustic analysis found %s, consistent with natural human speech.",
			joinPhrases(phrases))
	}

	if unavailable == 1 {
		sb.WriteString(" Reduced confidence: one detection signal was unavailable.")
	} else if unavailable > 1 {
		fmt.Fprintf(&sb, " Reduced confidence: %d detection signals were unavailable.", unavailable)
	}

	return sb.String()
}

// topPhrases picks the strongest distinct cue categories that pushed toward
// the final label and renders them in that label's direction. If no cue
// agrees with the label, the strongest cues are used regardless of sign.
func topPhrases(label calibrate.Label, attrs []detect.Attribution) []string {
	direction := 1.0
	if label == calibrate.Human {
		direction = -1.0
	}

	phrases := collectPhrases(label, attrs, direction)
	if len(phrases) == 0 {
		phrases = collectPhrases(label, attrs, 0)
	}
	return phrases
}

func collectPhrases(label calibrate.Label, attrs []detect.Attribution, direction float64) []string {
	var phrases []string
	seen := make(map[string]bool)
	for _, a := range attrs {
		if len(phrases) == TopCues {
			break
		}
		if seen[a.Cue] || math.Abs(a.Weight) < 1e-9 {
			continue
		}
		if direction != 0 && a.Weight*direction <= 0 {
			continue
		}
		p, ok := cuePhrases[a.Cue]
		if !ok {
			continue
		}
		seen[a.Cue] = true
		if label == calibrate.AIGenerated {
			phrases = append(phrases, p.synthetic)
		} else {
			phrases = append(phrases, p.human)
		}
	}
	return phrases
}

func joinPhrases(phrases []string) string {
	if len(phrases) == 1 {
		return phrases[0]
	}
	return phrases[0] + " and " + phrases[1]
}
