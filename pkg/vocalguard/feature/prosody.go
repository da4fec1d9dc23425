package feature

import "math"

const (
	pitchFloorHz   = 50.0
	pitchCeilHz    = 400.0
	voicingMinCorr = 0.30
	voicedMinRMS   = 1e-3
)

// prosodyStats aggregates the pitch-contour and amplitude-regularity
// descriptors. Jitter and shimmer are the classic cycle-to-cycle
// irregularity measures, computed here frame-to-frame on the analysis grid;
// synthetic voices tend to sit well below natural baselines on both.
type prosodyStats struct {
	pitchMean   float64
	pitchVar    float64
	jitter      float64
	shimmer     float64
	voicedRatio float64
	rmsMean     float64
	rmsVar      float64
}

func computeProsodyStats(raw [][]float64, sampleRate int) prosodyStats {
	if len(raw) == 0 {
		return prosodyStats{}
	}

	minLag := int(float64(sampleRate) / pitchCeilHz)
	maxLag := int(float64(sampleRate) / pitchFloorHz)

	rms := make([]float64, len(raw))
	var pitches []float64 // Hz, voiced frames only
	var periods []float64 // samples, voiced frames only, consecutive
	var voicedRMS []float64
	voiced := 0

	for t, frame := range raw {
		rms[t] = frameRMS(frame)

		lag, corr := bestAutocorrLag(frame, minLag, maxLag)
		if corr < voicingMinCorr || rms[t] < voicedMinRMS {
			continue
		}
		voiced++
		pitches = append(pitches, float64(sampleRate)/lag)
		periods = append(periods, lag)
		voicedRMS = append(voicedRMS, rms[t])
	}

	return prosodyStats{
		pitchMean:   mean(pitches),
		pitchVar:    variance(pitches),
		jitter:      relativeDelta(periods),
		shimmer:     relativeDelta(voicedRMS),
		voicedRatio: float64(voiced) / float64(len(raw)),
		rmsMean:     mean(rms),
		rmsVar:      variance(rms),
	}
}

func frameRMS(frame []float64) float64 {
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// bestAutocorrLag finds the pitch period as the smallest local autocorrelation
// maximum within 2% of the global maximum, which keeps perfectly periodic
// signals from flipping to sub-harmonic lags between frames. The lag is
// refined to sub-sample precision by parabolic interpolation so constant-pitch
// signals do not pick up quantization jitter.
func bestAutocorrLag(frame []float64, minLag, maxLag int) (lag float64, corr float64) {
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0, 0
	}

	corrs := make([]float64, maxLag+2)
	globalMax := 0.0
	for tau := minLag; tau <= maxLag; tau++ {
		corrs[tau] = normalizedAutocorr(frame, tau)
		if corrs[tau] > globalMax {
			globalMax = corrs[tau]
		}
	}
	if globalMax <= 0 {
		return 0, 0
	}

	bestLag := 0
	threshold := 0.98 * globalMax
	for tau := minLag + 1; tau < maxLag; tau++ {
		if corrs[tau] >= threshold && corrs[tau] >= corrs[tau-1] && corrs[tau] >= corrs[tau+1] {
			bestLag = tau
			break
		}
	}
	if bestLag == 0 {
		return 0, 0
	}

	refined := float64(bestLag)
	prev, cur, next := corrs[bestLag-1], corrs[bestLag], corrs[bestLag+1]
	denom := prev - 2*cur + next
	if math.Abs(denom) > 1e-12 {
		refined += 0.5 * (prev - next) / denom
	}
	return refined, cur
}

func normalizedAutocorr(frame []float64, tau int) float64 {
	n := len(frame) - tau
	var num, e0, e1 float64
	for i := 0; i < n; i++ {
		num += frame[i] * frame[i+tau]
		e0 += frame[i] * frame[i]
		e1 += frame[i+tau] * frame[i+tau]
	}
	den := math.Sqrt(e0 * e1)
	if den < 1e-12 {
		return 0
	}
	return num / den
}

// relativeDelta is the mean absolute difference between consecutive values
// divided by the overall mean: the shared core of jitter and shimmer.
func relativeDelta(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	if m < 1e-12 {
		return 0
	}
	var sum float64
	for i := 1; i < len(xs); i++ {
		sum += math.Abs(xs[i] - xs[i-1])
	}
	return (sum / float64(len(xs)-1)) / m
}
