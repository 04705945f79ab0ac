package tremor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmplitudeScoreBands(t *testing.T) {
	tests := []struct {
		amplitude float64
		want      float64
	}{
		{0, 0},
		{0.25, 1.0},
		{0.5, 2.0},
		{1.25, 3.5},
		{2.0, 5.0},
		{3.0, 6.0},
		{5.9, 8.9},
		{6.0, 9.0},
		{8.0, 10.0},
		{20.0, 10.0}, // saturates
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, amplitudeScore(tt.amplitude), 1e-9, "amplitude=%v", tt.amplitude)
	}
}

func TestFrequencyFactorBands(t *testing.T) {
	tests := []struct {
		frequency float64
		want      float64
	}{
		{4.0, 1.3},
		{5.0, 1.3},
		{6.0, 1.3},
		{3.99, 1.1},
		{6.01, 1.1},
		{2.0, 1.1},
		{8.0, 1.1},
		{1.99, 1.0},
		{8.01, 1.0},
		{0, 1.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, frequencyFactor(tt.frequency), 1e-9, "frequency=%v", tt.frequency)
	}
}

func TestInTremorRangeBoundaries(t *testing.T) {
	assert.True(t, InTremorRange(4.0))
	assert.True(t, InTremorRange(5.0))
	assert.True(t, InTremorRange(6.0))
	assert.False(t, InTremorRange(3.99))
	assert.False(t, InTremorRange(6.01))
	assert.False(t, InTremorRange(0))
}

func TestComposeScoreParkinsonianScenario(t *testing.T) {
	// Filtered RMS 3.0 in the 4-6 Hz band with perfect regularity:
	// 6 * 1.3 * 1.3 = 10.14, clamped to the scale ceiling.
	assert.InDelta(t, 10.0, ComposeScore(3.0, 5.0, 1.0), 1e-9)

	// The same oscillation without the regularity boost stays on scale.
	assert.InDelta(t, 7.8, ComposeScore(3.0, 5.0, 0.0), 1e-9)

	// Out-of-band frequencies lose the boost entirely.
	assert.InDelta(t, 6.6, ComposeScore(3.0, 7.0, 0.0), 1e-9)
	assert.InDelta(t, 6.0, ComposeScore(3.0, 10.0, 0.0), 1e-9)
}

func TestComposeScoreRoundsToOneDecimal(t *testing.T) {
	// 3.34 * 1.3 * 1.15 = 4.9933... -> 5.0
	assert.InDelta(t, 5.0, ComposeScore(1.17, 5.0, 0.5), 1e-9)
}

func TestComposeScoreBounds(t *testing.T) {
	assert.Zero(t, ComposeScore(0, 0, 0))
	assert.InDelta(t, 10.0, ComposeScore(100, 5.0, 1.0), 1e-9)
}

func TestClassifySeverityLabels(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, LabelMinimal},
		{2.4, LabelMinimal},
		{2.5, LabelMild},
		{4.9, LabelMild},
		{5.0, LabelModerate},
		{7.4, LabelModerate},
		{7.5, LabelSevere},
		{10.0, LabelSevere},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySeverity(tt.score), "score=%v", tt.score)
	}
}
