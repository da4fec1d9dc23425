package feature

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	// WindowSize and HopSize fix the analysis grid: 64 ms windows with
	// 16 ms hops at the 16 kHz working rate.
	WindowSize = 1024
	HopSize    = 256
)

// stft computes per-frame half magnitude spectra with a Hamming window,
// returning the magnitudes alongside the raw (unwindowed) frames used by the
// time-domain analyses.
func stft(samples []float64) (mags [][]float64, raw [][]float64) {
	if len(samples) < WindowSize {
		return nil, nil
	}

	win := window.Hamming(WindowSize)
	for start := 0; start+WindowSize <= len(samples); start += HopSize {
		frame := make([]float64, WindowSize)
		copy(frame, samples[start:start+WindowSize])
		raw = append(raw, frame)

		windowed := make([]float64, WindowSize)
		for i := range windowed {
			windowed[i] = frame[i] * win[i]
		}
		spectrum := fft.FFTReal(windowed)

		mag := make([]float64, WindowSize/2)
		for i := range mag {
			mag[i] = cmplx.Abs(spectrum[i])
		}
		mags = append(mags, mag)
	}
	return mags, raw
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}
