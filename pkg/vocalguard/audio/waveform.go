package audio

import "math"

// Waveform is a decoded clip: mono float64 samples in [-1,1] at the fixed
// working sample rate. Each waveform belongs to a single pipeline invocation
// and is never shared across requests.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the clip length in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// RMS returns the root-mean-square level over the whole clip.
func (w *Waveform) RMS() float64 {
	if len(w.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range w.Samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(w.Samples)))
}

// downmixStereo averages interleaved stereo frames to mono.
func downmixStereo(samples []float64) []float64 {
	frames := len(samples) / 2
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		out[i] = (samples[2*i] + samples[2*i+1]) * 0.5
	}
	return out
}
