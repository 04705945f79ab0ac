package voice

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// AnalyzeFatigue detects prosodic energy decay over the utterance. The
// timeline is trimmed of trailing silence (at most 20% of samples, so the
// regression reflects speech rather than post-utterance quiet), split into
// ~5 half-overlapping windows, and a least-squares slope of window mean
// amplitude vs index is fitted and normalized by the overall mean.
// Declining energy maps linearly to severity, reaching 2 at a 15% decline
// per window; flat or rising energy scores 0 plus a weak-onset penalty
// when the opening windows are markedly quieter than the rest.
func AnalyzeFatigue(timeline []AmplitudeSample, silenceThreshold float64) FatigueAnalysis {
	analysis := FatigueAnalysis{}

	trimmed := trimTrailingSilence(timeline, silenceThreshold)
	n := len(trimmed)
	if n < fatigueMinWindows {
		return analysis
	}

	// ~5 windows at 50% overlap span 3 window lengths.
	winSize := n / (fatigueWindowCount/2 + 1)
	if winSize < 2 {
		winSize = 2
	}
	hop := winSize / 2
	if hop < 1 {
		hop = 1
	}

	var means []float64
	for start := 0; start+winSize <= n; start += hop {
		var sum float64
		for _, s := range trimmed[start : start+winSize] {
			sum += s.Amplitude
		}
		means = append(means, sum/float64(winSize))
	}
	if len(means) < fatigueMinWindows {
		return analysis
	}

	overallMean := dsp.Mean(means)
	if overallMean < dsp.EpsilonDenominator {
		return analysis
	}

	slope := dsp.LinearSlope(means)
	normSlope := slope / overallMean

	analysis.Valid = true
	analysis.WindowMeans = means
	analysis.NormalizedSlope = normSlope

	if first := means[0]; first > dsp.EpsilonDenominator {
		last := means[len(means)-1]
		analysis.AmplitudeDecay = math.Max(0, (first-last)/first)
	}

	var severity float64
	if normSlope >= 0 {
		severity = SeverityNone
		quarter := (len(means) + 3) / 4
		if dsp.Mean(means[:quarter]) < fatigueWeakOnsetRatio*overallMean {
			severity += fatigueWeakOnsetPenalty
		}
	} else {
		severity = quantizeSeverity(-normSlope / fatigueFullSeverityDecline * SeverityMax)
	}

	analysis.Metric = MetricResult{Value: f64Ptr(normSlope), Severity: f64Ptr(severity)}
	return analysis
}

// trimTrailingSilence drops below-threshold samples from the tail, up to
// 20% of the timeline.
func trimTrailingSilence(timeline []AmplitudeSample, threshold float64) []AmplitudeSample {
	maxTrim := int(float64(len(timeline)) * fatigueTrimFraction)
	end := len(timeline)
	for end > 0 && len(timeline)-end < maxTrim && timeline[end-1].Amplitude <= threshold {
		end--
	}
	return timeline[:end]
}
