package dsp

import (
	"math"
	"math/cmplx"
)

// NextPow2 returns the smallest power of two >= n (minimum 1).
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// FFT computes the discrete Fourier transform with an iterative
// bit-reversal radix-2 Cooley-Tukey algorithm. Inputs whose length is not
// a power of two are zero-padded.
func FFT(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	n := NextPow2(len(x))
	out := make([]complex128, n)
	copy(out, x)

	// Bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			out[i], out[j] = out[j], out[i]
		}
	}

	// Butterfly stages
	for length := 2; length <= n; length <<= 1 {
		wl := cmplx.Rect(1, -2*math.Pi/float64(length))
		half := length / 2
		for start := 0; start < n; start += length {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				u := out[start+k]
				v := out[start+k+half] * w
				out[start+k] = u + v
				out[start+k+half] = u - v
				w *= wl
			}
		}
	}

	return out
}

// FFTReal converts a real signal to complex and computes its FFT,
// zero-padding to the next power of two.
func FFTReal(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	buf := make([]complex128, len(x))
	for i, v := range x {
		buf[i] = complex(v, 0)
	}
	return FFT(buf)
}

// MagnitudeSpectrum returns magnitudes for the positive-frequency bins
// (DC through Nyquist inclusive).
func MagnitudeSpectrum(spectrum []complex128) []float64 {
	if len(spectrum) == 0 {
		return []float64{}
	}

	bins := len(spectrum)/2 + 1
	if bins > len(spectrum) {
		bins = len(spectrum)
	}

	mags := make([]float64, bins)
	for i := 0; i < bins; i++ {
		mags[i] = cmplx.Abs(spectrum[i])
	}
	return mags
}

// BinFrequencies returns the center frequency of each positive bin for the
// given FFT size and sample rate.
func BinFrequencies(fftSize, bins, sampleRate int) []float64 {
	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * float64(sampleRate) / float64(fftSize)
	}
	return freqs
}
