package voice

import (
	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// ExtractSpectralFeatures computes informational frequency-domain
// descriptors over 30 ms Hann frames (10 ms hop): spectral centroid and
// low/high energy tilt around 1 kHz, summarized as mean and standard
// deviation across frames. The features are reported for context and
// never enter a score.
func ExtractSpectralFeatures(samples []float64, sampleRate int, cfg SpectralConfig) *SpectralFeatures {
	if sampleRate <= 0 {
		return nil
	}

	frameSize := int(cfg.FrameSec * float64(sampleRate))
	hopSize := int(cfg.HopSec * float64(sampleRate))
	if frameSize < 2 || hopSize < 1 || len(samples) < frameSize {
		return nil
	}

	fftSize := dsp.NextPow2(frameSize)
	window := dsp.HannWindow(frameSize)
	windowed := make([]float64, frameSize)

	var centroids, tilts []float64
	frameCount := (len(samples)-frameSize)/hopSize + 1
	for i := 0; i < frameCount; i++ {
		start := i * hopSize
		copy(windowed, samples[start:start+frameSize])
		for j := range windowed {
			windowed[j] *= window[j]
		}

		spectrum := dsp.FFTReal(windowed)
		magnitudes := dsp.MagnitudeSpectrum(spectrum)
		freqs := dsp.BinFrequencies(fftSize, len(magnitudes), sampleRate)

		var magSum, weightedSum float64
		var lowEnergy, highEnergy float64
		for b, m := range magnitudes {
			magSum += m
			weightedSum += freqs[b] * m
			if freqs[b] < cfg.TiltSplitHz {
				lowEnergy += m * m
			} else {
				highEnergy += m * m
			}
		}
		if magSum < dsp.EpsilonDenominator {
			continue
		}

		centroids = append(centroids, weightedSum/magSum)

		tilt := cfg.TiltMax
		if highEnergy > dsp.EpsilonEnergy {
			tilt = dsp.Clamp(lowEnergy/highEnergy, 0, cfg.TiltMax)
		}
		tilts = append(tilts, tilt)
	}

	if len(centroids) == 0 {
		return nil
	}

	return &SpectralFeatures{
		CentroidMeanHz: dsp.Mean(centroids),
		CentroidStdHz:  dsp.StdDev(centroids),
		TiltMean:       dsp.Mean(tilts),
		TiltStd:        dsp.StdDev(tilts),
		FrameCount:     len(centroids),
	}
}
