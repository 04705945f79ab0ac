package voice

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// AnalyzeTransitions scores how smoothly speech restarts across pauses.
// For each adjacent segment pair it forms a bridge window from the
// trailing 20% of the earlier segment through the leading 20% of the
// later one (the gap included), measures relative amplitude variability
// inside the bridge, and converts it to smoothness = 1/(1 + std/mean).
// Longer bridges relative to the surrounding segments earn a boost, capped
// at doubling; smoothness is capped at 1. Severity = 2*(1 - mean
// smoothness).
func AnalyzeTransitions(timeline []AmplitudeSample, segments []Segment, secondsPerReading float64) MetricResult {
	if len(segments) < transitionMinSegments {
		return MetricResult{}
	}

	var sum float64
	var count int
	for i := 1; i < len(segments); i++ {
		prev, next := segments[i-1], segments[i]

		prevLen := prev.EndIndex - prev.StartIndex + 1
		nextLen := next.EndIndex - next.StartIndex + 1
		tail := int(math.Ceil(float64(prevLen) * transitionBridgeFraction))
		lead := int(math.Ceil(float64(nextLen) * transitionBridgeFraction))
		if tail < 1 {
			tail = 1
		}
		if lead < 1 {
			lead = 1
		}

		bridgeStart := prev.EndIndex - tail + 1
		bridgeEnd := next.StartIndex + lead - 1
		if bridgeStart < 0 {
			bridgeStart = 0
		}
		if bridgeEnd >= len(timeline) {
			bridgeEnd = len(timeline) - 1
		}
		if bridgeEnd <= bridgeStart {
			continue
		}

		bridge := make([]float64, 0, bridgeEnd-bridgeStart+1)
		for j := bridgeStart; j <= bridgeEnd; j++ {
			bridge = append(bridge, timeline[j].Amplitude)
		}

		mean := dsp.Mean(bridge)
		if mean < dsp.EpsilonDenominator {
			continue
		}
		smoothness := 1.0 / (1.0 + dsp.StdDev(bridge)/mean)

		avgSegSec := float64(prevLen+nextLen) / 2.0 * secondsPerReading
		bridgeSec := float64(len(bridge)) * secondsPerReading
		if avgSegSec > dsp.EpsilonDenominator {
			boost := 1.0 + math.Min(1.0, bridgeSec/avgSegSec)
			smoothness = math.Min(1.0, smoothness*boost)
		}

		sum += smoothness
		count++
	}

	if count == 0 {
		return MetricResult{}
	}

	avg := sum / float64(count)
	severity := quantizeSeverity(2.0 * (1.0 - avg))
	return MetricResult{Value: f64Ptr(avg), Severity: f64Ptr(severity)}
}
