package voice

// AmplitudeSample is one element of the capture timeline: a block-level
// amplitude reading and its elapsed time since capture start.
type AmplitudeSample struct {
	Amplitude float64 `json:"amplitude"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

// Segment is a contiguous run of above-threshold (speaking) samples in a
// timeline, bounded by detected pauses. Indices are inclusive.
type Segment struct {
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

// SegmentationResult describes the speech/pause structure of a timeline.
type SegmentationResult struct {
	Segments            []Segment `json:"segments"`
	SpeakingDurationSec float64   `json:"speaking_duration_sec"`
	PauseCount          int       `json:"pause_count"`
	Threshold           float64   `json:"threshold"`
	SecondsPerReading   float64   `json:"seconds_per_reading"`
}

// F0Frame is one voiced pitch estimate on the cleaned contour.
type F0Frame struct {
	TimeSec         float64 `json:"time_sec"`
	F0Hz            float64 `json:"f0_hz"`
	CorrelationPeak float64 `json:"correlation_peak"`
}

// F0Contour is the cleaned fundamental-frequency track plus its summary
// statistics.
type F0Contour struct {
	Frames        []F0Frame `json:"frames"`
	MeanF0        float64   `json:"mean_f0"`
	F0StdDev      float64   `json:"f0_std_dev"`
	F0Range       float64   `json:"f0_range"`
	JitterPercent float64   `json:"jitter_percent"`
	VoicedRatio   float64   `json:"voiced_ratio"`
}

// MetricResult pairs a measured value with its severity contribution.
// Severity is nil when the metric could not be calculated; the composer
// treats nil as the metric's maximum penalty, never as zero.
type MetricResult struct {
	Value    *float64 `json:"value"`
	Severity *float64 `json:"severity"`
}

// Metrics groups the five scored voice sub-metrics.
type Metrics struct {
	VOT         MetricResult `json:"vot"`
	Transitions MetricResult `json:"transitions"`
	Fatigue     MetricResult `json:"fatigue"`
	Vowels      MetricResult `json:"vowels"`
	Steadiness  MetricResult `json:"steadiness"`
}

// ShimmerResult holds cycle-to-cycle amplitude variability measurements.
type ShimmerResult struct {
	Percent    float64 `json:"percent"`
	Db         float64 `json:"db"`
	FrameCount int     `json:"frame_count"`
	Valid      bool    `json:"valid"`
}

// VOTResult holds the voice-onset-time measurements across detected
// plosive bursts.
type VOTResult struct {
	AvgMs        *float64  `json:"avg_ms"`
	Severity     *float64  `json:"severity"`
	Measurements []float64 `json:"measurements,omitempty"`
	BurstCount   int       `json:"burst_count"`
}

// FatigueAnalysis holds the prosodic-decay regression and the window
// means it was fitted over.
type FatigueAnalysis struct {
	Metric          MetricResult `json:"metric"`
	WindowMeans     []float64    `json:"window_means,omitempty"`
	NormalizedSlope float64      `json:"normalized_slope"`
	AmplitudeDecay  float64      `json:"amplitude_decay"`
	Valid           bool         `json:"valid"`
}

// SpectralFeatures are informational frequency-domain descriptors; they
// are reported but never scored.
type SpectralFeatures struct {
	CentroidMeanHz float64 `json:"centroid_mean_hz"`
	CentroidStdHz  float64 `json:"centroid_std_hz"`
	TiltMean       float64 `json:"tilt_mean"`
	TiltStd        float64 `json:"tilt_std"`
	FrameCount     int     `json:"frame_count"`
}

// Result is the immutable outcome of one voice analysis pass.
type Result struct {
	Score               float64           `json:"score"`
	Scheme              string            `json:"scheme"`
	SpeakingDurationSec float64           `json:"speaking_duration_sec"`
	PauseCount          int               `json:"pause_count"`
	AmplitudeVariance   float64           `json:"amplitude_variance"`
	SpeakingRateWPM     float64           `json:"speaking_rate_wpm"`
	WordCount           int               `json:"word_count"`
	Metrics             Metrics           `json:"metrics"`
	Spectral            *SpectralFeatures `json:"spectral,omitempty"`
	Details             map[string]any    `json:"details,omitempty"`
	RecommendRetake     bool              `json:"recommend_retake"`
	InsufficientData    bool              `json:"insufficient_data"`
}

// f64Ptr returns a pointer to v, for optional metric values.
func f64Ptr(v float64) *float64 {
	return &v
}
