// Package audio turns encoded byte buffers into normalized waveforms: mono,
// 16 kHz, bounded duration. MP3 decoding uses hajimehoshi/go-mp3, WAV uses
// go-audio/wav; everything is resampled to the working rate in-process.
package audio

import (
	"context"
	"errors"
	"strings"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
)

const (
	// WorkingSampleRate is the fixed pipeline rate. 16 kHz covers the
	// speech band while keeping decoded buffers small.
	WorkingSampleRate = 16000

	// MaxPayloadBytes bounds the encoded input buffer.
	MaxPayloadBytes = 10 << 20

	// MinSeconds and MaxSeconds bound the decoded clip duration. Shorter
	// clips carry too little signal for a reliable decision; longer clips
	// risk unbounded latency.
	MinSeconds = 1.0
	MaxSeconds = 30.0
)

// Decode validates and decodes an encoded buffer into a normalized Waveform.
// The declared format tag is matched case-insensitively against the supported
// codecs ("mp3", "wav").
func Decode(ctx context.Context, data []byte, format string) (*Waveform, error) {
	const op = "audio.Decode"

	if len(data) == 0 {
		return nil, fault.New(fault.EmptyPayload, op, "audio payload is empty")
	}
	if len(data) > MaxPayloadBytes {
		return nil, fault.Newf(fault.PayloadTooLarge, op,
			"audio payload exceeds %d bytes", MaxPayloadBytes)
	}

	var (
		samples []float64
		rate    int
		err     error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "mp3":
		samples, rate, err = decodeMP3(data)
	case "wav":
		samples, rate, err = decodeWAV(data)
	default:
		return nil, fault.Newf(fault.UnsupportedFormat, op,
			"unsupported audio format %q: expected mp3 or wav", format)
	}
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, ctxFault(op, err)
	}

	if rate != WorkingSampleRate {
		samples = Resample(samples, rate, WorkingSampleRate)
	}

	w := &Waveform{Samples: samples, SampleRate: WorkingSampleRate}
	if d := w.Duration(); d < MinSeconds || d > MaxSeconds {
		return nil, fault.Newf(fault.DurationOutOfRange, op,
			"clip duration %.2fs outside allowed range [%.0fs, %.0fs]", d, MinSeconds, MaxSeconds)
	}
	return w, nil
}

func ctxFault(op string, err error) *fault.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Wrap(fault.ProcessingTimeout, op, "processing deadline exceeded", err)
	}
	return fault.Wrap(fault.Internal, op, "request canceled", err)
}
