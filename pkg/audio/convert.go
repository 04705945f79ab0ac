package audio

import "fmt"

// PCM16BytesToFloat64 converts a little-endian 16-bit signed PCM byte
// block to float64 samples in [-1, 1].
func PCM16BytesToFloat64(block []byte) ([]float64, error) {
	if len(block)%2 != 0 {
		return nil, fmt.Errorf("PCM block size %d not aligned for 16-bit samples", len(block))
	}

	samples := make([]float64, len(block)/2)
	for i := range samples {
		sample := int16(block[i*2]) | int16(block[i*2+1])<<8
		samples[i] = float64(sample) / 32768.0
	}
	return samples, nil
}

// Float64ToPCM16Bytes converts float64 samples to a little-endian 16-bit
// signed PCM block, clamping to [-1, 1].
func Float64ToPCM16Bytes(samples []float64) []byte {
	block := make([]byte, len(samples)*2)
	for i, sample := range samples {
		if sample > 1 {
			sample = 1
		}
		if sample < -1 {
			sample = -1
		}
		v := int16(sample * 32767.0)
		block[i*2] = byte(v)
		block[i*2+1] = byte(v >> 8)
	}
	return block
}

// DownmixInterleaved averages interleaved channel frames into a mono
// series. Trailing samples of an incomplete frame are dropped.
func DownmixInterleaved(samples []float64, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	frames := len(samples) / channels
	mono := make([]float64, frames)
	for frame := 0; frame < frames; frame++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += samples[frame*channels+ch]
		}
		mono[frame] = sum / float64(channels)
	}
	return mono
}
