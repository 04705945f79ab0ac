package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeWAV writes a 16-bit WAV file from interleaved samples and returns
// its raw bytes.
func encodeWAV(t *testing.T, samples []float64, sampleRate, channels int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767.0)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}

func sineWave(freq float64, sampleRate int, duration float64) []float64 {
	n := int(duration * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = 0.3 * math.Sin(2*math.Pi*freq*t)
	}
	return samples
}

func TestDecodeWAVBytesMono(t *testing.T) {
	sampleRate := 16000
	original := sineWave(440.0, sampleRate, 1.2)
	raw := encodeWAV(t, original, sampleRate, 1)

	pcm, err := DecodeWAVBytes(raw)
	require.NoError(t, err)

	assert.Equal(t, sampleRate, pcm.SampleRate, "sample rate should survive the round trip")
	assert.Equal(t, 1, pcm.Channels)
	assert.Equal(t, 16, pcm.BitDepth)
	assert.Equal(t, len(original), len(pcm.Samples))
	assert.InDelta(t, 1.2, pcm.Duration(), 0.01)

	for i := range original {
		assert.InDelta(t, original[i], pcm.Samples[i], 0.001,
			"sample %d should match within 16-bit quantization", i)
	}
}

func TestDecodeWAVBytesDownmixesStereo(t *testing.T) {
	sampleRate := 16000
	frames := sampleRate // 1 second
	interleaved := make([]float64, frames*2)
	for i := 0; i < frames; i++ {
		interleaved[i*2] = 0.5
		interleaved[i*2+1] = -0.5
	}
	raw := encodeWAV(t, interleaved, sampleRate, 2)

	pcm, err := DecodeWAVBytes(raw)
	require.NoError(t, err)

	assert.Equal(t, 2, pcm.Channels)
	assert.Equal(t, frames, len(pcm.Samples), "stereo frames should downmix to one sample each")
	assert.InDelta(t, 1.0, pcm.Duration(), 0.01)
	for i, s := range pcm.Samples {
		assert.InDelta(t, 0.0, s, 0.001, "opposite-phase channels should cancel at frame %d", i)
	}
}

func TestValidateWAVHeader(t *testing.T) {
	valid := make([]byte, wavHeaderSize)
	copy(valid[0:4], "RIFF")
	copy(valid[8:12], "WAVE")

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"valid magic", valid, false},
		{"too short", []byte("RIFF"), true},
		{"empty", nil, true},
		{"wrong magic", make([]byte, wavHeaderSize), true},
		{"riff without wave", append(append([]byte("RIFF"), make([]byte, 4)...), make([]byte, 36)...), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWAVHeader(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeWAVBytesRejectsGarbageBody(t *testing.T) {
	// Valid magic, undecodable chunk layout.
	data := make([]byte, 128)
	copy(data[0:4], "RIFF")
	copy(data[8:12], "WAVE")
	for i := 12; i < len(data); i++ {
		data[i] = byte(i * 31)
	}

	_, err := DecodeWAVBytes(data)
	assert.Error(t, err)
}

func TestPCM16RoundTrip(t *testing.T) {
	original := sineWave(220.0, 8000, 0.25)

	block := Float64ToPCM16Bytes(original)
	require.Equal(t, len(original)*2, len(block))

	decoded, err := PCM16BytesToFloat64(block)
	require.NoError(t, err)
	require.Equal(t, len(original), len(decoded))

	for i := range original {
		assert.InDelta(t, original[i], decoded[i], 0.0005)
	}
}

func TestPCM16BytesToFloat64RejectsOddLength(t *testing.T) {
	_, err := PCM16BytesToFloat64([]byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
}

func TestFloat64ToPCM16BytesClamps(t *testing.T) {
	block := Float64ToPCM16Bytes([]float64{2.0, -2.0})
	decoded, err := PCM16BytesToFloat64(block)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, decoded[0], 0.001)
	assert.InDelta(t, -1.0, decoded[1], 0.001)
}

func TestDownmixInterleaved(t *testing.T) {
	stereo := []float64{1.0, 0.0, 0.5, 0.5, -1.0, 1.0}
	mono := DownmixInterleaved(stereo, 2)
	require.Equal(t, 3, len(mono))
	assert.InDelta(t, 0.5, mono[0], 1e-12)
	assert.InDelta(t, 0.5, mono[1], 1e-12)
	assert.InDelta(t, 0.0, mono[2], 1e-12)

	// Incomplete trailing frame is dropped.
	mono = DownmixInterleaved([]float64{1, 1, 1, 1, 1}, 2)
	assert.Equal(t, 2, len(mono))

	// Mono input is copied, not aliased.
	in := []float64{0.1, 0.2}
	out := DownmixInterleaved(in, 1)
	require.Equal(t, in, out)
	out[0] = 9
	assert.InDelta(t, 0.1, in[0], 1e-12)
}
