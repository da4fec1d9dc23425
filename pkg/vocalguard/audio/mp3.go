package audio

import (
	"bytes"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
)

// decodeMP3 decodes an MP3 buffer to mono float64 samples at the source rate.
// go-mp3 always emits 16-bit little-endian stereo PCM.
func decodeMP3(data []byte) ([]float64, int, error) {
	const op = "audio.decodeMP3"

	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fault.Wrap(fault.UnsupportedFormat, op, "payload is not valid mp3 data", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fault.Wrap(fault.UnsupportedFormat, op, "mp3 stream is truncated or corrupt", err)
	}

	// 4 bytes per frame: left int16 + right int16.
	frames := len(pcm) / 4
	const scale = 1.0 / 32768.0
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(uint16(pcm[4*i]) | uint16(pcm[4*i+1])<<8)
		r := int16(uint16(pcm[4*i+2]) | uint16(pcm[4*i+3])<<8)
		samples[i] = (float64(l) + float64(r)) * 0.5 * scale
	}

	return samples, dec.SampleRate(), nil
}
