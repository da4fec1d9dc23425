package detect

import (
	"fmt"
	"math"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"
)

// TimbreEmbedding scores how far the clip's timbre embedding sits from the
// language's natural-speech region. Deviation in any direction counts:
// synthetic voices land off-manifold rather than consistently high or low on
// individual dimensions.
type TimbreEmbedding struct{}

func NewTimbreEmbedding() *TimbreEmbedding { return &TimbreEmbedding{} }

func (d *TimbreEmbedding) Name() string { return "timbre_embedding" }

const (
	timbreSlope    = 0.35
	timbreBaseline = 1.2
)

func (d *TimbreEmbedding) Score(vec *feature.Vector) (Result, error) {
	var sumAbs float64
	for i := 0; i < feature.EmbeddingDims; i++ {
		z, err := zscore(vec, fmt.Sprintf("embedding_%d", i))
		if err != nil {
			return Result{}, err
		}
		sumAbs += math.Abs(z)
	}
	meanAbs := sumAbs / feature.EmbeddingDims

	deviation := timbreSlope * (meanAbs - timbreBaseline)
	return Result{
		Score: logistic(deviation),
		Attributions: []Attribution{
			{Feature: "embedding", Cue: "timbral balance", Weight: deviation},
		},
	}, nil
}
