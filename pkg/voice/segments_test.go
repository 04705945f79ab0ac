package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTimeline builds a timeline with one reading every 100 ms.
func makeTimeline(amplitudes []float64) []AmplitudeSample {
	timeline := make([]AmplitudeSample, len(amplitudes))
	for i, a := range amplitudes {
		timeline[i] = AmplitudeSample{Amplitude: a, ElapsedMs: float64(i) * 100.0}
	}
	return timeline
}

func segmentTestConfig() SegmentConfig {
	return SegmentConfig{
		FixedThreshold:            0.5,
		MinPauseDurationSec:       0.3,
		FallbackSecondsPerReading: 0.1,
	}
}

func TestDetectSegmentsSplitsOnPause(t *testing.T) {
	amps := []float64{
		1, 1, 1, 1, 1, // segment 1
		0.1, 0.1, 0.1, 0.1, // pause (4 readings >= 3 required)
		1, 1, 1, 1, 1, // segment 2
		0.1, 0.1, 0.1, // trailing silence
	}
	result := DetectSegments(makeTimeline(amps), segmentTestConfig())

	require.Len(t, result.Segments, 2)
	assert.Equal(t, Segment{StartIndex: 0, EndIndex: 4}, result.Segments[0])
	assert.Equal(t, Segment{StartIndex: 9, EndIndex: 13}, result.Segments[1])
	assert.Equal(t, 1, result.PauseCount, "trailing silence must not count as a pause")
	assert.InDelta(t, 1.0, result.SpeakingDurationSec, 1e-9)
	assert.InDelta(t, 0.1, result.SecondsPerReading, 1e-9)
}

func TestDetectSegmentsShortDipDoesNotSplit(t *testing.T) {
	amps := []float64{1, 1, 1, 1, 1, 0.1, 0.1, 1, 1, 1, 1, 1}
	result := DetectSegments(makeTimeline(amps), segmentTestConfig())

	require.Len(t, result.Segments, 1, "a 2-reading dip is shorter than the minimum pause")
	assert.Equal(t, Segment{StartIndex: 0, EndIndex: 11}, result.Segments[0])
	assert.Equal(t, 0, result.PauseCount)
}

func TestDetectSegmentsAllBelowThreshold(t *testing.T) {
	amps := make([]float64, 20)
	for i := range amps {
		amps[i] = 0.001
	}
	cfg := segmentTestConfig()
	cfg.FixedThreshold = 0 // adaptive gate

	result := DetectSegments(makeTimeline(amps), cfg)

	assert.Empty(t, result.Segments)
	assert.Equal(t, 0, result.PauseCount)
	assert.Zero(t, result.SpeakingDurationSec)
}

func TestDetectSegmentsAdaptiveThreshold(t *testing.T) {
	// 75th percentile of a loud capture scales the gate above the floor.
	amps := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	cfg := segmentTestConfig()
	cfg.FixedThreshold = 0

	result := DetectSegments(makeTimeline(amps), cfg)

	// P75 = 0.775, gate = 0.2325.
	assert.InDelta(t, 0.2325, result.Threshold, 1e-9)
}

func TestDetectSegmentsEmptyTimeline(t *testing.T) {
	result := DetectSegments(nil, segmentTestConfig())
	assert.Empty(t, result.Segments)
	assert.Equal(t, 0, result.PauseCount)
}

func TestSecondsPerReadingFallback(t *testing.T) {
	// Identical timestamps cannot yield a cadence; the fallback applies.
	timeline := []AmplitudeSample{
		{Amplitude: 1, ElapsedMs: 50},
		{Amplitude: 1, ElapsedMs: 50},
		{Amplitude: 1, ElapsedMs: 50},
	}
	result := DetectSegments(timeline, segmentTestConfig())
	assert.InDelta(t, 0.1, result.SecondsPerReading, 1e-9)
}

func TestBuildTimeline(t *testing.T) {
	sampleRate := 16000
	samples := make([]float64, sampleRate) // 1 second
	for i := range samples {
		samples[i] = 0.5
	}

	timeline := BuildTimeline(samples, sampleRate)

	require.Len(t, timeline, 20, "50 ms blocks over 1 s")
	assert.InDelta(t, 0.5, timeline[0].Amplitude, 1e-9)
	assert.InDelta(t, 0.0, timeline[0].ElapsedMs, 1e-9)
	assert.InDelta(t, 950.0, timeline[19].ElapsedMs, 1e-9)

	assert.Nil(t, BuildTimeline(nil, sampleRate))
	assert.Nil(t, BuildTimeline(samples, 0))
}
