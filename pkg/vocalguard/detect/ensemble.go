package detect

import (
	"math"
	"sort"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"
	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/profile"
)

// DetectorScore is one detector's contribution to an ensemble result.
type DetectorScore struct {
	Name  string
	Score float64
}

// EnsembleResult is the combined scorer output. AvailableWeight is the share
// of configured detector weight that actually ran: 1.0 for a full ensemble,
// lower when detectors were skipped, in which case Unavailable lists them.
type EnsembleResult struct {
	Score           float64
	Detectors       []DetectorScore
	AvailableWeight float64
	Unavailable     []string
	Attributions    []Attribution
}

// Degraded reports whether any configured detector was unavailable.
func (r *EnsembleResult) Degraded() bool {
	return len(r.Unavailable) > 0
}

// Ensemble combines independent detectors under the per-language weight
// vector from the profile.
type Ensemble struct {
	detectors []Detector
}

// NewEnsemble builds an ensemble over the given detectors.
func NewEnsemble(detectors ...Detector) *Ensemble {
	return &Ensemble{detectors: detectors}
}

// DefaultEnsemble returns the standard three-detector ensemble.
func DefaultEnsemble() *Ensemble {
	return NewEnsemble(
		NewSpectralArtifact(),
		NewProsodyNaturalness(),
		NewTimbreEmbedding(),
	)
}

// Detectors returns the detector names in ensemble order.
func (e *Ensemble) Detectors() []string {
	names := make([]string, len(e.detectors))
	for i, d := range e.detectors {
		names[i] = d.Name()
	}
	return names
}

// Score runs every detector against the vector and combines the raw scores
// with the profile's weights. Individual detector failures are tolerated by
// renormalizing the remaining weights; the request only fails when no
// detector produced a score.
func (e *Ensemble) Score(vec *feature.Vector, prof *profile.LanguageProfile) (*EnsembleResult, error) {
	const op = "detect.Ensemble.Score"

	res := &EnsembleResult{}
	var weighted float64

	for _, d := range e.detectors {
		weight, ok := prof.DetectorWeights[d.Name()]
		if !ok {
			// Unweighted detectors are configured off for this language.
			continue
		}

		out, err := d.Score(vec)
		if err != nil {
			res.Unavailable = append(res.Unavailable, d.Name())
			continue
		}

		weighted += weight * out.Score
		res.AvailableWeight += weight
		res.Detectors = append(res.Detectors, DetectorScore{Name: d.Name(), Score: out.Score})
		for _, a := range out.Attributions {
			a.Weight *= weight
			res.Attributions = append(res.Attributions, a)
		}
	}

	if res.AvailableWeight <= 0 {
		return nil, fault.New(fault.ScoringUnavailable, op,
			"no authenticity detector is available for this request")
	}

	res.Score = weighted / res.AvailableWeight
	for i := range res.Attributions {
		res.Attributions[i].Weight /= res.AvailableWeight
	}

	sort.SliceStable(res.Attributions, func(i, j int) bool {
		wi, wj := math.Abs(res.Attributions[i].Weight), math.Abs(res.Attributions[j].Weight)
		if wi != wj {
			return wi > wj
		}
		return res.Attributions[i].Feature < res.Attributions[j].Feature
	})

	return res, nil
}
