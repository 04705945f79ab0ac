package voice

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// AnalyzeShimmer measures cycle-to-cycle peak amplitude variability. For
// each voiced contour frame it slices a 30 ms window at the frame's
// position into pitch-period chunks (period from that frame's F0), takes
// the peak |amplitude| per chunk, and computes the relative mean
// consecutive peak difference. Per-frame percentages are averaged across
// frames.
func AnalyzeShimmer(samples []float64, sampleRate int, contour F0Contour) ShimmerResult {
	result := ShimmerResult{}
	if sampleRate <= 0 || len(samples) == 0 || len(contour.Frames) == 0 {
		return result
	}

	windowSize := int(shimmerWindowSec * float64(sampleRate))
	if windowSize < 2 {
		return result
	}

	var sum float64
	for _, frame := range contour.Frames {
		if frame.F0Hz <= 0 {
			continue
		}

		start := int(frame.TimeSec * float64(sampleRate))
		if start < 0 || start+windowSize > len(samples) {
			continue
		}
		window := samples[start : start+windowSize]

		period := int(float64(sampleRate) / frame.F0Hz)
		if period < shimmerMinPeakWidth {
			continue
		}
		periods := len(window) / period
		if periods < shimmerMinPeriods {
			continue
		}

		peaks := make([]float64, periods)
		for p := 0; p < periods; p++ {
			var peak float64
			for _, v := range window[p*period : (p+1)*period] {
				if a := math.Abs(v); a > peak {
					peak = a
				}
			}
			peaks[p] = peak
		}

		meanPeak := dsp.Mean(peaks)
		if meanPeak < dsp.EpsilonDenominator {
			continue
		}

		var diffSum float64
		for p := 1; p < periods; p++ {
			diffSum += math.Abs(peaks[p] - peaks[p-1])
		}
		sum += diffSum / float64(periods-1) / meanPeak * 100.0
		result.FrameCount++
	}

	if result.FrameCount < shimmerMinFrameCount {
		return result
	}

	result.Percent = sum / float64(result.FrameCount)
	result.Db = 20.0 * math.Log10(1.0+result.Percent/100.0)
	result.Valid = true
	return result
}
