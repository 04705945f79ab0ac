package dsp

import (
	"math"
	"math/cmplx"
	"testing"

	sonspectral "github.com/RyanBlaney/sonido-sonar/algorithms/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1000: 1024, 1024: 1024, 1025: 2048}
	for in, want := range cases {
		assert.Equal(t, want, NextPow2(in), "NextPow2(%d)", in)
	}
}

func TestFFTImpulse(t *testing.T) {
	signal := make([]float64, 64)
	signal[0] = 1.0

	spectrum := FFT(toComplex(signal))
	require.Len(t, spectrum, 64)

	// An impulse has a flat magnitude spectrum
	for i, c := range spectrum {
		assert.InDelta(t, 1.0, cmplx.Abs(c), 1e-9, "bin %d", i)
	}
}

func TestFFTPureTone(t *testing.T) {
	const n = 1024
	const bin = 64

	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * float64(bin) * float64(i) / float64(n))
	}

	mags := MagnitudeSpectrum(FFTReal(signal))
	require.Len(t, mags, n/2+1)

	// A pure tone at an exact bin concentrates all energy there, with
	// magnitude N/2 for a unit-amplitude sine
	peakBin := 0
	for i, m := range mags {
		if m > mags[peakBin] {
			peakBin = i
		}
	}
	assert.Equal(t, bin, peakBin, "peak should land on the tone's bin")
	assert.InDelta(t, float64(n)/2, mags[bin], 1e-6)
	assert.InDelta(t, 0.0, mags[bin+3], 1e-6, "off-tone bins should be empty")
}

func TestFFTZeroPadsNonPowerOfTwo(t *testing.T) {
	signal := make([]float64, 1000)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 50 * float64(i) / 1000)
	}

	spectrum := FFTReal(signal)
	assert.Len(t, spectrum, 1024)
}

func TestFFTMatchesReferenceImplementation(t *testing.T) {
	const n = 1024
	signal := make([]float64, n)
	for i := range signal {
		t1 := float64(i) / float64(n)
		signal[i] = 0.5*math.Sin(2*math.Pi*97*t1) +
			0.3*math.Sin(2*math.Pi*211*t1) +
			0.1*math.Cos(2*math.Pi*350*t1)
	}

	mine := FFTReal(signal)
	reference := sonspectral.NewFFT().Compute(signal)
	require.GreaterOrEqual(t, len(reference), n/2, "reference spectrum too short")

	bins := min(len(mine), len(reference))
	for i := 0; i < bins; i++ {
		assert.InDelta(t, cmplx.Abs(reference[i]), cmplx.Abs(mine[i]), 1e-6,
			"magnitude mismatch at bin %d", i)
	}
}

func TestHannWindow(t *testing.T) {
	window := HannWindow(512)
	require.Len(t, window, 512)

	assert.InDelta(t, 0.0, window[0], 1e-12, "Hann endpoints are zero")
	assert.InDelta(t, 0.0, window[511], 1e-12)
	for i := 0; i < 256; i++ {
		assert.InDelta(t, window[i], window[511-i], 1e-12, "Hann is symmetric")
	}

	single := HannWindow(1)
	assert.Equal(t, []float64{1.0}, single)
}

func TestApplyWindow(t *testing.T) {
	frame := []float64{1, 2, 3, 4}
	window := []float64{0.5, 0.5, 0.5, 0.5}
	assert.Equal(t, []float64{0.5, 1, 1.5, 2}, ApplyWindow(frame, window))

	short := ApplyWindow(frame, []float64{1, 1})
	assert.Len(t, short, 2, "output bounded by shorter input")
}

func TestBinFrequencies(t *testing.T) {
	freqs := BinFrequencies(1024, 513, 44100)
	require.Len(t, freqs, 513)
	assert.InDelta(t, 0.0, freqs[0], 1e-12)
	assert.InDelta(t, 44100.0/1024.0, freqs[1], 1e-9)
	assert.InDelta(t, 22050.0, freqs[512], 1e-9, "last bin is Nyquist")
}

func toComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}
