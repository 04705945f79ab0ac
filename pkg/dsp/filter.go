package dsp

// HighPass applies a single-pole high-pass filter
// y[i] = alpha*(y[i-1] + x[i] - x[i-1]) with y[0] = 0, removing slow
// drift and constant offsets such as gravity.
func HighPass(samples []float64, alpha float64) []float64 {
	filtered := make([]float64, len(samples))
	if len(samples) == 0 {
		return filtered
	}
	filtered[0] = 0
	for i := 1; i < len(samples); i++ {
		filtered[i] = alpha * (filtered[i-1] + samples[i] - samples[i-1])
	}
	return filtered
}

// ZeroCrossings counts sign changes in the signal. Zero-valued samples
// keep the previous sign so flat stretches are not counted.
func ZeroCrossings(samples []float64) int {
	crossings := 0
	prevSign := 0
	for _, v := range samples {
		sign := 0
		if v > 0 {
			sign = 1
		} else if v < 0 {
			sign = -1
		}
		if sign == 0 {
			continue
		}
		if prevSign != 0 && sign != prevSign {
			crossings++
		}
		prevSign = sign
	}
	return crossings
}
