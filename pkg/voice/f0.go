package voice

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// TrackF0 estimates a cleaned fundamental-frequency contour over mono
// audio. Per 30 ms Hann frame it picks the best normalized autocorrelation
// lag in the 80-400 Hz range, refines it with parabolic interpolation, and
// keeps the frame only when the peak clears the voicing threshold and the
// frame clears an adaptive RMS gate. The raw contour is then median
// smoothed and stripped of global outliers.
func TrackF0(samples []float64, sampleRate int, cfg F0Config) F0Contour {
	contour := F0Contour{Frames: []F0Frame{}}
	if sampleRate <= 0 {
		return contour
	}

	frameSize := int(cfg.FrameSec * float64(sampleRate))
	hopSize := int(cfg.HopSec * float64(sampleRate))
	if frameSize < 2 || hopSize < 1 || len(samples) < frameSize {
		return contour
	}

	minLag := int(float64(sampleRate) / cfg.MaxHz)
	maxLag := int(float64(sampleRate) / cfg.MinHz)
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

	raw := make([]F0Frame, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		if frameRMS[i] < gate {
			continue
		}

		start := i * hopSize
		copy(windowed, samples[start:start+frameSize])
		for j := range windowed {
			windowed[j] *= window[j]
		}

		lag, peak := dsp.BestLagInRange(windowed, minLag, maxLag)
		if lag <= 0 || peak < cfg.VoicingThreshold {
			continue
		}

		raw = append(raw, F0Frame{
			TimeSec:         float64(start) / float64(sampleRate),
			F0Hz:            float64(sampleRate) / lag,
			CorrelationPeak: peak,
		})
	}

	if len(raw) == 0 {
		return contour
	}

	smoothed := medianSmoothContour(raw, cfg.MedianRadius, cfg.MedianMaxDeviation)
	cleaned := dropGlobalOutliers(smoothed, cfg.OutlierSigma)
	if len(cleaned) == 0 {
		return contour
	}

	contour.Frames = cleaned
	f0s := make([]float64, len(cleaned))
	minF0, maxF0 := cleaned[0].F0Hz, cleaned[0].F0Hz
	for i, f := range cleaned {
		f0s[i] = f.F0Hz
		minF0 = math.Min(minF0, f.F0Hz)
		maxF0 = math.Max(maxF0, f.F0Hz)
	}

	contour.MeanF0 = dsp.Mean(f0s)
	contour.F0StdDev = dsp.StdDev(f0s)
	contour.F0Range = maxF0 - minF0
	contour.VoicedRatio = float64(len(cleaned)) / float64(frameCount)

	if len(f0s) >= 2 && contour.MeanF0 > dsp.EpsilonDenominator {
		var diffSum float64
		for i := 1; i < len(f0s); i++ {
			diffSum += math.Abs(f0s[i] - f0s[i-1])
		}
		contour.JitterPercent = diffSum / float64(len(f0s)-1) / contour.MeanF0 * 100.0
	}

	return contour
}

// medianSmoothContour replaces F0 values deviating more than maxDeviation
// (fractional) from the local median of a +/-radius window. The window
// slides over a replicate-padded sequence so edge frames see a full
// window.
func medianSmoothContour(frames []F0Frame, radius int, maxDeviation float64) []F0Frame {
	n := len(frames)
	if n == 0 || radius < 1 {
		return frames
	}

	out := make([]F0Frame, n)
	copy(out, frames)

	sm := dsp.NewSlidingMedian(2*radius + 1)
	for k := -radius; k <= n-1+radius; k++ {
		idx := k
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		sm.Push(frames[idx].F0Hz)

		center := k - radius
		if center < 0 || center >= n {
			continue
		}
		med := sm.Median()
		if med > dsp.EpsilonDenominator && math.Abs(frames[center].F0Hz-med) > maxDeviation*med {
			out[center].F0Hz = med
		}
	}
	return out
}

// dropGlobalOutliers removes frames whose F0 deviates more than sigma
// standard deviations from the contour mean.
func dropGlobalOutliers(frames []F0Frame, sigma float64) []F0Frame {
	if len(frames) < 3 {
		return frames
	}

	f0s := make([]float64, len(frames))
	for i, f := range frames {
		f0s[i] = f.F0Hz
	}
	mean := dsp.Mean(f0s)
	std := dsp.StdDev(f0s)
	if std < dsp.EpsilonDenominator {
		return frames
	}

	kept := make([]F0Frame, 0, len(frames))
	for _, f := range frames {
		if math.Abs(f.F0Hz-mean) <= sigma*std {
			kept = append(kept, f)
		}
	}
	return kept
}
