package voice

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// EstimateHNR derives a harmonic-to-noise estimate from the pitch
// contour: each frame's autocorrelation peak r is read as the periodic
// fraction of frame energy, HNR_dB = 10*log10(r/(1-r)), with r clamped to
// [0.01, 0.99]. Returns the mean over voiced frames and false when the
// contour has none.
func EstimateHNR(contour F0Contour) (float64, bool) {
	if len(contour.Frames) == 0 {
		return 0, false
	}

	var sum float64
	for _, f := range contour.Frames {
		sum += hnrFromCorrelation(f.CorrelationPeak)
	}
	return sum / float64(len(contour.Frames)), true
}

func hnrFromCorrelation(r float64) float64 {
	r = dsp.Clamp(r, hnrCorrMin, hnrCorrMax)
	return 10.0 * math.Log10(r/(1.0-r))
}

// AnalyzeVowelClarity recomputes the harmonic/noise split from scratch
// over independent 25 ms Hann frames (12.5 ms hop) and bands the mean HNR
// into a severity. It does not reuse the pitch contour, so a failed F0
// track cannot mask vowel degradation.
func AnalyzeVowelClarity(samples []float64, sampleRate int, cfg Config) MetricResult {
	if sampleRate <= 0 {
		return MetricResult{}
	}

	frameSize := int(vowelFrameSec * float64(sampleRate))
	hopSize := int(vowelHopSec * float64(sampleRate))
	if frameSize < 2 || hopSize < 1 || len(samples) < frameSize {
		return MetricResult{}
	}

	minLag := int(float64(sampleRate) / cfg.F0.MaxHz)
	maxLag := int(float64(sampleRate) / cfg.F0.MinHz)
	if minLag < 1 {
		minLag = 1
	}

	frameCount := (len(samples)-frameSize)/hopSize + 1
	frameRMS := make([]float64, frameCount)
	for i := 0; i < frameCount; i++ {
		start := i * hopSize
		frameRMS[i] = dsp.RMS(samples[start : start+frameSize])
	}
	gate := math.Max(GateFloor, dsp.Percentile(frameRMS, GatePercentile)*GateFraction)

	window := dsp.HannWindow(frameSize)
	windowed := make([]float64, frameSize)

	var sum float64
	var used int
	for i := 0; i < frameCount; i++ {
		if frameRMS[i] < gate {
			continue
		}

		start := i * hopSize
		copy(windowed, samples[start:start+frameSize])
		for j := range windowed {
			windowed[j] *= window[j]
		}

		_, peak := dsp.BestLagInRange(windowed, minLag, maxLag)
		sum += hnrFromCorrelation(peak)
		used++
	}

	if used == 0 {
		return MetricResult{}
	}

	meanHNR := sum / float64(used)
	severity := classifyVowelSeverity(meanHNR)
	return MetricResult{Value: f64Ptr(meanHNR), Severity: f64Ptr(severity)}
}

// classifyVowelSeverity bands mean HNR (dB) into the 5-level severity
// scale.
func classifyVowelSeverity(meanHNRDb float64) float64 {
	if meanHNRDb >= vowelHNRNone {
		return SeverityNone
	} else if meanHNRDb >= vowelHNRMinimal {
		return SeverityMinimal
	} else if meanHNRDb >= vowelHNRMild {
		return SeverityMild
	} else if meanHNRDb >= vowelHNRModerate {
		return SeverityModerate
	}
	return SeverityMax
}
