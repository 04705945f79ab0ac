package audio

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
)

// PCM is a decoded mono audio buffer with samples normalized to [-1, 1].
type PCM struct {
	Samples    []float64
	SampleRate int
	Channels   int // channel count before downmix
	BitDepth   int
}

// Duration returns the buffer length in seconds.
func (p *PCM) Duration() float64 {
	if p == nil || p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

// wavHeaderSize is the minimal RIFF/WAVE container header length.
const wavHeaderSize = 44

// ValidateWAVHeader checks the RIFF/WAVE container magic without decoding
// the stream. Payloads shorter than a canonical header are rejected
// outright.
func ValidateWAVHeader(data []byte) error {
	if len(data) < wavHeaderSize {
		return fmt.Errorf("audio data too short for a WAV header: %d bytes", len(data))
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return fmt.Errorf("invalid audio format: expected RIFF/WAVE container")
	}
	return nil
}

// DecodeWAVBytes decodes a WAV payload into a normalized mono PCM buffer.
// Multi-channel audio is downmixed by averaging interleaved frames.
func DecodeWAVBytes(data []byte) (*PCM, error) {
	if err := ValidateWAVHeader(data); err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid audio format: not a decodable WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty PCM data in WAV payload")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	sampleRate := buf.Format.SampleRate
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate in WAV payload: %d", sampleRate)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}

	samples := normalizeInts(buf.Data, bitDepth)
	if channels > 1 {
		samples = DownmixInterleaved(samples, channels)
	}

	return &PCM{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

// normalizeInts converts raw integer samples to float64 in [-1, 1].
// 8-bit WAV stores unsigned samples centered at 128; deeper formats are
// signed two's complement.
func normalizeInts(data []int, bitDepth int) []float64 {
	samples := make([]float64, len(data))
	if bitDepth == 8 {
		for i, v := range data {
			samples[i] = (float64(v) - 128.0) / 128.0
		}
		return samples
	}

	scale := float64(int64(1) << (uint(bitDepth) - 1))
	for i, v := range data {
		samples[i] = float64(v) / scale
	}
	return samples
}
