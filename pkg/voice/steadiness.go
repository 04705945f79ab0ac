package voice

import "github.com/parkinsense/symptom-engine/pkg/dsp"

// AnalyzeSteadiness compares local to global amplitude variability. Local
// standard deviations over ~10%-length half-overlapping windows are
// averaged and divided by the global standard deviation; a high ratio
// means fluctuation is concentrated in short stretches rather than spread
// evenly, which reads as unsteady phonation.
func AnalyzeSteadiness(timeline []AmplitudeSample) MetricResult {
	n := len(timeline)
	if n < MinTimelineSamples {
		return MetricResult{}
	}

	amplitudes := make([]float64, n)
	for i, s := range timeline {
		amplitudes[i] = s.Amplitude
	}

	globalStd := dsp.StdDev(amplitudes)
	if globalStd < dsp.EpsilonDenominator {
		return MetricResult{}
	}

	winSize := int(float64(n) * steadinessWindowFraction)
	if winSize < 2 {
		winSize = 2
	}
	hop := winSize / 2
	if hop < 1 {
		hop = 1
	}

	var sum float64
	var count int
	for start := 0; start+winSize <= n; start += hop {
		sum += dsp.StdDev(amplitudes[start : start+winSize])
		count++
	}
	if count == 0 {
		return MetricResult{}
	}

	ratio := sum / float64(count) / globalStd
	severity := quantizeSeverity((ratio - steadinessRatioOffset) * steadinessRatioScale)
	return MetricResult{Value: f64Ptr(ratio), Severity: f64Ptr(severity)}
}
