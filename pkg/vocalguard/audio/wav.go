package audio

import (
	"bytes"
	"io"
	"math"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
)

// decodeWAV decodes a PCM WAV buffer to mono float64 samples at the source
// rate. Mono and stereo inputs are accepted; stereo is averaged down.
func decodeWAV(data []byte) ([]float64, int, error) {
	const op = "audio.decodeWAV"

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, fault.New(fault.UnsupportedFormat, op, "payload is not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fault.Wrap(fault.UnsupportedFormat, op, "wav data chunk is truncated or corrupt", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, 0, fault.New(fault.UnsupportedFormat, op, "wav header is missing format information")
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, 0, fault.Newf(fault.UnsupportedFormat, op, "unsupported wav bit depth %d", bitDepth)
	}
	scale := 1.0 / math.Pow(2, float64(bitDepth-1))

	samples := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float64(s) * scale
	}

	switch buf.Format.NumChannels {
	case 1:
	case 2:
		samples = downmixStereo(samples)
	default:
		return nil, 0, fault.Newf(fault.UnsupportedFormat, op,
			"unsupported channel count %d: only mono and stereo are accepted", buf.Format.NumChannels)
	}

	return samples, buf.Format.SampleRate, nil
}

// EncodeWAV writes a waveform as a 16-bit mono PCM WAV stream. Used by the
// CLI for exporting normalized clips and by decoder sanity checks.
func EncodeWAV(w *Waveform, out io.WriteSeeker) error {
	const op = "audio.EncodeWAV"

	enc := wav.NewEncoder(out, w.SampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: w.SampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(w.Samples)),
	}
	for i, s := range w.Samples {
		v := int(math.Round(s * 32767))
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		buf.Data[i] = v
	}
	if err := enc.Write(buf); err != nil {
		return fault.Wrap(fault.Internal, op, "failed to write wav data", err)
	}
	if err := enc.Close(); err != nil {
		return fault.Wrap(fault.Internal, op, "failed to finalize wav stream", err)
	}
	return nil
}
