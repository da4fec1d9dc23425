// Package profile holds the per-language configuration the pipeline routes
// every request through: feature normalization statistics, detector weights,
// and calibration parameters. Profiles are loaded once at startup, validated,
// and read-only afterwards. Per-language behavior lives here as data, never
// as code branches in the pipeline.
package profile

import (
	"fmt"
)

// Stat is a feature's baseline mean and standard deviation for one language,
// used for z-score normalization before any thresholding.
type Stat struct {
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
}

// Calibration holds the logistic curve and label thresholds for one language.
type Calibration struct {
	Slope          float64 `yaml:"slope"`
	Midpoint       float64 `yaml:"midpoint"`
	ThresholdAI    float64 `yaml:"threshold_ai"`
	ThresholdHuman float64 `yaml:"threshold_human"`
}

// LanguageProfile is the immutable per-language configuration. Lookups hand
// out the shared pointer; nothing in the pipeline mutates it after load.
type LanguageProfile struct {
	Name            string             `yaml:"-"`
	ModelVariant    string             `yaml:"model_variant"`
	DetectorWeights map[string]float64 `yaml:"detector_weights"`
	Calibration     Calibration        `yaml:"calibration"`
	Normalization   map[string]Stat    `yaml:"normalization"`
}

// Normalize returns the z-score of a raw feature value for this language.
func (p *LanguageProfile) Normalize(feature string, raw float64) (float64, error) {
	st, ok := p.Normalization[feature]
	if !ok {
		return 0, fmt.Errorf("no normalization stats for feature %q in profile %q", feature, p.Name)
	}
	return (raw - st.Mean) / st.Std, nil
}

const weightTolerance = 1e-6

func (p *LanguageProfile) validate() error {
	if len(p.DetectorWeights) == 0 {
		return fmt.Errorf("profile %q has no detector weights", p.Name)
	}
	var sum float64
	for name, w := range p.DetectorWeights {
		if w < 0 {
			return fmt.Errorf("profile %q: detector %q has negative weight %f", p.Name, name, w)
		}
		sum += w
	}
	if sum < 1-weightTolerance || sum > 1+weightTolerance {
		return fmt.Errorf("profile %q: detector weights sum to %f, want 1", p.Name, sum)
	}

	c := p.Calibration
	if c.Slope <= 0 {
		return fmt.Errorf("profile %q: calibration slope must be positive", p.Name)
	}
	if c.ThresholdAI <= 0 || c.ThresholdAI >= 1 || c.ThresholdHuman <= 0 || c.ThresholdHuman >= 1 {
		return fmt.Errorf("profile %q: thresholds must lie strictly inside (0,1)", p.Name)
	}
	if c.ThresholdHuman >= c.ThresholdAI {
		return fmt.Errorf("profile %q: threshold_human %f must be below threshold_ai %f",
			p.Name, c.ThresholdHuman, c.ThresholdAI)
	}

	if len(p.Normalization) == 0 {
		return fmt.Errorf("profile %q has no normalization stats", p.Name)
	}
	for feature, st := range p.Normalization {
		if st.Std <= 0 {
			return fmt.Errorf("profile %q: feature %q has non-positive std", p.Name, feature)
		}
	}
	return nil
}
