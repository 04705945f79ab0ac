package dsp

import "math"

// HannWindow returns Hann coefficients for the given size.
func HannWindow(size int) []float64 {
	window := make([]float64, size)
	if size == 1 {
		window[0] = 1.0
		return window
	}
	for i := range window {
		window[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(size-1)))
	}
	return window
}

// ApplyWindow multiplies frame by window element-wise into a new slice.
// The shorter of the two lengths bounds the output.
func ApplyWindow(frame, window []float64) []float64 {
	n := len(frame)
	if len(window) < n {
		n = len(window)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = frame[i] * window[i]
	}
	return out
}
