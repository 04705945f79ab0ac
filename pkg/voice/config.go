package voice

// Severity levels shared by every sub-metric classifier. A nil severity
// (not zero) marks a metric that could not be calculated.
const (
	SeverityNone     = 0.0
	SeverityMinimal  = 0.5
	SeverityMild     = 1.0
	SeverityModerate = 1.5
	SeverityMax      = 2.0
)

// Capture protocol constants. The phrase and the timing assumptions are
// fixed to one guided test, not configurable per utterance.
const (
	// TargetPhrase is the fixed 9-word utterance the test asks for.
	TargetPhrase = "the quick brown fox jumps over the lazy dog"

	// TargetWordCount is the number of words in TargetPhrase.
	TargetWordCount = 9

	// UniqueTargetWordCount counts distinct words ("the" repeats).
	UniqueTargetWordCount = 8

	// IdealSpeakingSec is the expected speaking time for the phrase.
	IdealSpeakingSec = 4.0

	// MinTimelineSamples is the minimum capture size; below it analysis
	// degrades to an insufficient-data result instead of running.
	MinTimelineSamples = 10

	// DefaultSampleRate applies when a capture source does not report one.
	DefaultSampleRate = 44100

	// TimelineBlockSec is the envelope block size used when an amplitude
	// timeline must be derived from a raw waveform (file and HTTP inputs
	// arrive without per-block capture callbacks).
	TimelineBlockSec = 0.05
)

// Adaptive silence/RMS gate, shared by segmentation and frame gating.
const (
	GateFloor      = 0.005
	GatePercentile = 75.0
	GateFraction   = 0.3
)

// Retake protocol gates.
const (
	RetakeMinWordCount     = 7
	RetakeMinUniqueMatches = 5
	RetakeMaxNilMetrics    = 2
)

// SegmentConfig tunes speech/pause segmentation of the amplitude timeline.
type SegmentConfig struct {
	// FixedThreshold overrides the adaptive silence threshold when > 0.
	FixedThreshold float64

	// MinPauseDurationSec is the shortest below-threshold run that closes
	// a segment.
	MinPauseDurationSec float64

	// FallbackSecondsPerReading stands in when the timeline carries no
	// usable timestamps (single reading or a zero time span).
	FallbackSecondsPerReading float64
}

// F0Config tunes the autocorrelation pitch tracker.
type F0Config struct {
	FrameSec         float64
	HopSec           float64
	MinHz            float64
	MaxHz            float64
	VoicingThreshold float64

	// MedianRadius is the half-width of the median smoothing window.
	MedianRadius int
	// MedianMaxDeviation replaces F0 values deviating more than this
	// fraction from the local median.
	MedianMaxDeviation float64
	// OutlierSigma drops frames this many standard deviations from the
	// global mean in the second cleanup pass.
	OutlierSigma float64
}

// VOTConfig tunes plosive-burst and voicing-onset detection.
type VOTConfig struct {
	EnvelopeWindowSec float64
	EnvelopeHopSec    float64
	BaselineSec       float64
	BurstRatio        float64
	BurstFloor        float64
	MinBurstSpacingMs float64
	MaxBursts         int

	OnsetScanMaxMs     float64
	VoicingWindowSec   float64
	VoicingThreshold   float64
	VoicingConsecutive int
	VoicingMinHz       float64
	VoicingMaxHz       float64
	EnvelopeOnsetRMS   float64
	EnvelopeOnsetRuns  int

	MinVOTMs float64
	MaxVOTMs float64
}

// SpectralConfig tunes the informational spectral feature extractor.
type SpectralConfig struct {
	FrameSec    float64
	HopSec      float64
	TiltSplitHz float64
	TiltMax     float64
}

// Config carries every heuristic threshold used by the voice pipeline, so
// the severity tables stay auditable in one place.
type Config struct {
	SampleRate int

	// Scheme selects the composer: "severity" (canonical) or "acoustic".
	Scheme string

	Segments SegmentConfig
	F0       F0Config
	VOT      VOTConfig
	Spectral SpectralConfig
}

// Scoring scheme names accepted by Config.Scheme.
const (
	SchemeSeverity = "severity"
	SchemeAcoustic = "acoustic"
)

// DefaultConfig returns the calibrated analyzer configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Scheme:     SchemeSeverity,
		Segments: SegmentConfig{
			MinPauseDurationSec:       0.3,
			FallbackSecondsPerReading: 0.1,
		},
		F0: F0Config{
			FrameSec:           0.030,
			HopSec:             0.010,
			MinHz:              80,
			MaxHz:              400,
			VoicingThreshold:   0.5,
			MedianRadius:       2,
			MedianMaxDeviation: 0.30,
			OutlierSigma:       2.0,
		},
		VOT: VOTConfig{
			EnvelopeWindowSec:  0.005,
			EnvelopeHopSec:     0.0025,
			BaselineSec:        0.050,
			BurstRatio:         1.5,
			BurstFloor:         0.015,
			MinBurstSpacingMs:  100,
			MaxBursts:          5,
			OnsetScanMaxMs:     200,
			VoicingWindowSec:   0.015,
			VoicingThreshold:   0.25,
			VoicingConsecutive: 2,
			VoicingMinHz:       80,
			VoicingMaxHz:       400,
			EnvelopeOnsetRMS:   0.02,
			EnvelopeOnsetRuns:  3,
			MinVOTMs:           5,
			MaxVOTMs:           200,
		},
		Spectral: SpectralConfig{
			FrameSec:    0.030,
			HopSec:      0.010,
			TiltSplitHz: 1000,
			TiltMax:     1000,
		},
	}
}

// Vowel-clarity HNR severity bands (dB).
const (
	vowelHNRNone     = 1.5
	vowelHNRMinimal  = 0.0
	vowelHNRMild     = -1.5
	vowelHNRModerate = -2.5
)

// Vowel-clarity frame geometry.
const (
	vowelFrameSec = 0.025
	vowelHopSec   = 0.0125
)

// HNR autocorrelation peak clamp range.
const (
	hnrCorrMin = 0.01
	hnrCorrMax = 0.99
)

// Shimmer extraction geometry.
const (
	shimmerWindowSec     = 0.030
	shimmerMinPeriods    = 2
	shimmerMinPeakWidth  = 2
	shimmerMinFrameCount = 1
)

// VOT severity bands (ms).
const (
	votBandNone    = 50.0
	votBandMinimal = 80.0
	votBandMild    = 120.0
)

// Transition smoothness tuning.
const (
	transitionBridgeFraction = 0.20
	transitionMinSegments    = 2
)

// Fatigue (prosodic decay) tuning.
const (
	fatigueTrimFraction        = 0.20
	fatigueWindowCount         = 5
	fatigueMinWindows          = 3
	fatigueFullSeverityDecline = 0.15
	fatigueWeakOnsetRatio      = 0.70
	fatigueWeakOnsetPenalty    = 0.5
)

// Steadiness tuning.
const (
	steadinessWindowFraction = 0.10
	steadinessRatioOffset    = 0.6
	steadinessRatioScale     = 1.5
)

// Severity-scheme composer weights.
const (
	durationPenaltyMax  = 1.5
	pausePenaltyStep    = 0.5
	pausePenaltyMax     = 1.5
	pauseFreeAllowance  = 1
	steadinessWeight    = 0.5
	compositeScoreMax   = 10.0
	compositeScoreScale = 1 // decimals kept in the rounded score
)

// Acoustic-scheme bands.
const (
	monotonicityF0StdSevere   = 10.0
	monotonicityF0StdModerate = 20.0
	monotonicityF0StdMild     = 30.0

	jitterSeverePercent   = 3.0
	jitterModeratePercent = 2.0
	jitterMildPercent     = 1.0

	shimmerModeratePercent = 10.0
	shimmerMildPercent     = 6.0

	decaySevere   = 0.25
	decayModerate = 0.15
	decayMild     = 0.08

	hnrSevereDb   = 0.0
	hnrModerateDb = 4.0
	hnrMildDb     = 8.0

	durationRatioLow  = 0.5
	durationRatioHigh = 2.0
)
