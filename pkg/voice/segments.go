package voice

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// DetectSegments classifies an amplitude timeline into speech segments and
// pauses. The silence threshold adapts to the capture level unless the
// config pins a fixed one; the reading cadence is derived from observed
// timestamps because capture intervals are irregular.
func DetectSegments(timeline []AmplitudeSample, cfg SegmentConfig) SegmentationResult {
	result := SegmentationResult{Segments: []Segment{}}
	if len(timeline) == 0 {
		return result
	}

	amplitudes := make([]float64, len(timeline))
	for i, s := range timeline {
		amplitudes[i] = s.Amplitude
	}

	result.Threshold = SilenceThreshold(amplitudes, cfg)
	result.SecondsPerReading = secondsPerReading(timeline, cfg)

	minPauseSamples := 1
	if cfg.MinPauseDurationSec > 0 && result.SecondsPerReading > 0 {
		minPauseSamples = int(math.Ceil(cfg.MinPauseDurationSec / result.SecondsPerReading))
		if minPauseSamples < 1 {
			minPauseSamples = 1
		}
	}

	inSegment := false
	segStart, segEnd := 0, 0
	belowRun := 0

	for i, s := range timeline {
		if s.Amplitude > result.Threshold {
			if !inSegment {
				inSegment = true
				segStart = i
			}
			segEnd = i
			belowRun = 0
			continue
		}

		if !inSegment {
			continue
		}
		belowRun++
		if belowRun >= minPauseSamples {
			result.Segments = append(result.Segments, Segment{StartIndex: segStart, EndIndex: segEnd})
			inSegment = false
			belowRun = 0
		}
	}
	if inSegment {
		result.Segments = append(result.Segments, Segment{StartIndex: segStart, EndIndex: segEnd})
	}

	for _, seg := range result.Segments {
		result.SpeakingDurationSec += float64(seg.EndIndex-seg.StartIndex+1) * result.SecondsPerReading
	}

	// Only gaps between segments count as pauses; trailing silence closed
	// the last segment without speech resuming, so it is not one.
	if len(result.Segments) > 1 {
		result.PauseCount = len(result.Segments) - 1
	}

	return result
}

// SilenceThreshold returns the segmentation threshold for a set of
// amplitudes: a configured fixed value, or the adaptive gate
// max(GateFloor, 75th percentile x GateFraction).
func SilenceThreshold(amplitudes []float64, cfg SegmentConfig) float64 {
	if cfg.FixedThreshold > 0 {
		return cfg.FixedThreshold
	}
	return math.Max(GateFloor, dsp.Percentile(amplitudes, GatePercentile)*GateFraction)
}

// secondsPerReading derives the capture cadence from observed timestamps,
// (last-first)/(n-1), never from a nominal rate.
func secondsPerReading(timeline []AmplitudeSample, cfg SegmentConfig) float64 {
	if len(timeline) < 2 {
		return cfg.FallbackSecondsPerReading
	}
	spanSec := (timeline[len(timeline)-1].ElapsedMs - timeline[0].ElapsedMs) / 1000.0
	spr := spanSec / float64(len(timeline)-1)
	if spr <= dsp.EpsilonDenominator {
		return cfg.FallbackSecondsPerReading
	}
	return spr
}

// BuildTimeline derives an amplitude timeline from a raw waveform by
// taking block RMS readings every TimelineBlockSec. File and HTTP inputs
// arrive as audio only, without the capture collaborator's per-block
// amplitude callbacks.
func BuildTimeline(samples []float64, sampleRate int) []AmplitudeSample {
	if sampleRate <= 0 || len(samples) == 0 {
		return nil
	}
	block := int(TimelineBlockSec * float64(sampleRate))
	if block < 1 {
		block = 1
	}

	timeline := make([]AmplitudeSample, 0, len(samples)/block+1)
	for start := 0; start < len(samples); start += block {
		end := start + block
		if end > len(samples) {
			end = len(samples)
		}
		timeline = append(timeline, AmplitudeSample{
			Amplitude: dsp.RMS(samples[start:end]),
			ElapsedMs: float64(start) / float64(sampleRate) * 1000.0,
		})
	}
	return timeline
}
