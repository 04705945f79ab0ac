package tremor

// Severity label cutoffs on the composite 0-10 score.
const (
	LabelMinimal  = "minimal"
	LabelMild     = "mild"
	LabelModerate = "moderate"
	LabelSevere   = "severe"
)

// MinSampleCount is the fewest magnitude samples a capture may hold and
// still be analyzed; shorter captures return the insufficient-data result.
const MinSampleCount = 10

// Parkinsonian resting tremor concentrates in the 4-6 Hz band; a wider
// 2-8 Hz band still earns partial frequency weighting.
const (
	TremorBandLowHz  = 4.0
	TremorBandHighHz = 6.0
	broadBandLowHz   = 2.0
	broadBandHighHz  = 8.0
)

// Amplitude piecewise-linear score knots (filtered RMS -> 0-10 points).
const (
	ampKneeFaint    = 0.5 // below: 4*a
	ampKneeModerate = 2.0 // [0.5, 2): 2 + 2*(a-0.5)
	ampKneeStrong   = 6.0 // [2, 6): 5 + (a-2); above: min(10, 9 + 0.5*(a-6))
)

const (
	frequencyFactorInBand   = 1.3
	frequencyFactorNearBand = 1.1
	regularityBoostWeight   = 0.3

	scoreMax = 10.0

	labelCutoffMinimal  = 2.5
	labelCutoffMild     = 5.0
	labelCutoffModerate = 7.5
)

// Config carries the tremor pipeline tuning. The defaults implement the
// fixed capture protocol; tests narrow them where useful.
type Config struct {
	// HighPassAlpha is the single-pole high-pass coefficient removing
	// gravity and slow postural drift from the magnitude signal.
	HighPassAlpha float64 `json:"high_pass_alpha" mapstructure:"high_pass_alpha"`
}

// DefaultConfig returns the calibrated tremor configuration.
func DefaultConfig() Config {
	return Config{
		HighPassAlpha: 0.8,
	}
}
