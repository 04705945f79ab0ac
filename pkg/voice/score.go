package voice

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// SeverityScoreInput carries everything the canonical composer needs.
type SeverityScoreInput struct {
	SpeakingDurationSec float64
	PauseCount          int
	WordCount           int
	Metrics             Metrics
}

// ComposeSeverityScore combines duration, pauses, word count, and the five
// sub-metric severities into the 0-10 composite. A nil severity
// contributes that metric's maximum penalty: insufficient evidence is
// treated as worst case, never as absence of impairment. The result is
// clamped to [0, 10] and rounded to one decimal.
func ComposeSeverityScore(in SeverityScoreInput) float64 {
	score := durationPenalty(in.SpeakingDurationSec)
	score += pausePenalty(in.PauseCount)
	score += WordPenalty(in.WordCount)

	score += severityOrMax(in.Metrics.VOT, SeverityMax)
	score += severityOrMax(in.Metrics.Transitions, SeverityMax)
	score += severityOrMax(in.Metrics.Fatigue, SeverityMax)
	score += severityOrMax(in.Metrics.Vowels, SeverityMax)
	score += severityOrMax(in.Metrics.Steadiness, SeverityMax) * steadinessWeight

	return dsp.RoundTo(dsp.Clamp(score, 0, compositeScoreMax), compositeScoreScale)
}

// durationPenalty grows with distance from the ideal speaking time,
// reaching its cap when speech lasts twice the ideal or none at all.
func durationPenalty(speakingSec float64) float64 {
	deviation := math.Abs(speakingSec-IdealSpeakingSec) / IdealSpeakingSec
	return dsp.Clamp(deviation*durationPenaltyMax, 0, durationPenaltyMax)
}

// pausePenalty charges for every pause beyond the single natural one.
func pausePenalty(pauses int) float64 {
	extra := pauses - pauseFreeAllowance
	if extra < 0 {
		extra = 0
	}
	return dsp.Clamp(float64(extra)*pausePenaltyStep, 0, pausePenaltyMax)
}

// WordPenalty maps missing target words to a penalty bucket: a perfect
// 9-word read costs 0, one missing word 0.5, two 1.0, three or four 1.5,
// five or more 2.0.
func WordPenalty(wordCount int) float64 {
	missing := TargetWordCount - wordCount
	if missing <= 0 {
		return 0
	}
	switch {
	case missing == 1:
		return 0.5
	case missing == 2:
		return 1.0
	case missing <= 4:
		return 1.5
	default:
		return 2.0
	}
}

func severityOrMax(m MetricResult, maxPenalty float64) float64 {
	if m.Severity == nil {
		return maxPenalty
	}
	return *m.Severity
}

// quantizeSeverity snaps a computed severity onto the half-step scale
// {0, 0.5, 1, 1.5, 2} every sub-metric reports on.
func quantizeSeverity(v float64) float64 {
	return dsp.Clamp(math.Round(v*2)/2, SeverityNone, SeverityMax)
}

// AcousticScoreInput carries the raw acoustic measurements for the
// alternative composer.
type AcousticScoreInput struct {
	F0StdDev            float64
	JitterPercent       float64
	ShimmerPercent      float64
	AmplitudeDecay      float64
	MeanHNRDb           float64
	SpeakingDurationSec float64
}

// ComposeAcousticScore is the alternative scheme scoring raw acoustic
// measurements directly: pitch monotonicity, jitter, shimmer, prosodic
// amplitude decay, harmonic clarity, and a duration-ratio guard. Its
// weight table is never blended with the severity scheme's.
func ComposeAcousticScore(in AcousticScoreInput) float64 {
	var score float64

	switch {
	case in.F0StdDev < monotonicityF0StdSevere:
		score += 1.5
	case in.F0StdDev < monotonicityF0StdModerate:
		score += 1.0
	case in.F0StdDev < monotonicityF0StdMild:
		score += 0.5
	}

	switch {
	case in.JitterPercent > jitterSeverePercent:
		score += 1.5
	case in.JitterPercent > jitterModeratePercent:
		score += 1.0
	case in.JitterPercent > jitterMildPercent:
		score += 0.5
	}

	switch {
	case in.ShimmerPercent > shimmerModeratePercent:
		score += 1.0
	case in.ShimmerPercent > shimmerMildPercent:
		score += 0.5
	}

	switch {
	case in.AmplitudeDecay > decaySevere:
		score += 1.5
	case in.AmplitudeDecay > decayModerate:
		score += 1.0
	case in.AmplitudeDecay > decayMild:
		score += 0.5
	}

	switch {
	case in.MeanHNRDb < hnrSevereDb:
		score += 1.5
	case in.MeanHNRDb < hnrModerateDb:
		score += 1.0
	case in.MeanHNRDb < hnrMildDb:
		score += 0.5
	}

	ratio := in.SpeakingDurationSec / IdealSpeakingSec
	if ratio < durationRatioLow || ratio > durationRatioHigh {
		score += 1.0
	}

	return dsp.RoundTo(dsp.Clamp(score, 0, compositeScoreMax), compositeScoreScale)
}
