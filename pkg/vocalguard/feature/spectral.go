package feature

import "math"

const specEps = 1e-12

// spectralStats aggregates per-frame spectral descriptors over a clip.
type spectralStats struct {
	flatnessMean float64
	flatnessVar  float64
	centroidMean float64
	centroidVar  float64
	rolloffMean  float64
	fluxMean     float64
}

func computeSpectralStats(mags [][]float64, sampleRate int) spectralStats {
	if len(mags) == 0 {
		return spectralStats{}
	}

	binHz := float64(sampleRate) / float64(WindowSize)

	flatness := make([]float64, len(mags))
	centroid := make([]float64, len(mags))
	rolloff := make([]float64, len(mags))
	var flux []float64

	var prev []float64
	for t, mag := range mags {
		flatness[t] = spectralFlatness(mag)
		centroid[t] = spectralCentroid(mag, binHz)
		rolloff[t] = spectralRolloff(mag, binHz, 0.85)

		norm := l2Normalize(mag)
		if prev != nil {
			flux = append(flux, l2Distance(norm, prev))
		}
		prev = norm
	}

	return spectralStats{
		flatnessMean: mean(flatness),
		flatnessVar:  variance(flatness),
		centroidMean: mean(centroid),
		centroidVar:  variance(centroid),
		rolloffMean:  mean(rolloff),
		fluxMean:     mean(flux),
	}
}

// spectralFlatness is the geometric-to-arithmetic mean ratio of the magnitude
// spectrum (Wiener entropy): near 1 for noise, near 0 for tonal content.
func spectralFlatness(mag []float64) float64 {
	if len(mag) == 0 {
		return 0
	}
	var logSum, sum float64
	for _, m := range mag {
		v := m + specEps
		logSum += math.Log(v)
		sum += v
	}
	n := float64(len(mag))
	return math.Exp(logSum/n) / (sum / n)
}

func spectralCentroid(mag []float64, binHz float64) float64 {
	var num, den float64
	for i, m := range mag {
		num += float64(i) * binHz * m
		den += m
	}
	if den < specEps {
		return 0
	}
	return num / den
}

// spectralRolloff returns the frequency below which the given fraction of
// spectral energy lies.
func spectralRolloff(mag []float64, binHz, fraction float64) float64 {
	var total float64
	for _, m := range mag {
		total += m * m
	}
	if total < specEps {
		return 0
	}
	target := total * fraction
	var acc float64
	for i, m := range mag {
		acc += m * m
		if acc >= target {
			return float64(i) * binHz
		}
	}
	return float64(len(mag)-1) * binHz
}

func l2Normalize(xs []float64) []float64 {
	var sum float64
	for _, x := range xs {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(xs))
	if norm < specEps {
		return out
	}
	for i, x := range xs {
		out[i] = x / norm
	}
	return out
}

func l2Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// zeroCrossingRate is the fraction of adjacent sample pairs that change sign.
func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var crossings int
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}
