package feature

import "math"

// EmbeddingDims is the size of the compact timbre embedding.
const EmbeddingDims = 8

// bandEdges splits the 512-bin half spectrum into eight roughly
// octave-spaced bands (0–16 kHz bin space at the working rate).
var bandEdges = [EmbeddingDims + 1]int{0, 4, 10, 22, 44, 84, 156, 284, 512}

// timbreEmbedding summarizes spectral balance as a fixed projection of log
// relative band energies. The projection matrix is a fixed constant, so the
// embedding is fully deterministic for a given clip.
func timbreEmbedding(mags [][]float64) []float64 {
	emb := make([]float64, EmbeddingDims)
	if len(mags) == 0 {
		return emb
	}

	bands := make([]float64, EmbeddingDims)
	var total float64
	for _, mag := range mags {
		for b := 0; b < EmbeddingDims; b++ {
			for i := bandEdges[b]; i < bandEdges[b+1] && i < len(mag); i++ {
				e := mag[i] * mag[i]
				bands[b] += e
				total += e
			}
		}
	}
	if total < 1e-12 {
		return emb
	}

	logBands := make([]float64, EmbeddingDims)
	for b := range bands {
		logBands[b] = math.Log10(bands[b]/total + 1e-9)
	}

	for i := 0; i < EmbeddingDims; i++ {
		var acc float64
		for j := 0; j < EmbeddingDims; j++ {
			acc += projection(i, j) * logBands[j]
		}
		emb[i] = acc
	}
	return emb
}

func projection(i, j int) float64 {
	return 0.5 * math.Sin(1.7*float64(i)+0.9*float64(j)+0.4)
}
