package tremor

// Sample is one motion-magnitude reading: the Euclidean magnitude of the
// raw acceleration vector (gravity included) and its capture timestamp.
type Sample struct {
	Magnitude float64 `json:"magnitude"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

// Result is the immutable outcome of one tremor analysis pass.
type Result struct {
	Score            float64 `json:"score"`             // composite severity, 0-10, one decimal
	Severity         string  `json:"severity"`          // minimal | mild | moderate | severe
	FrequencyHz      float64 `json:"frequency_hz"`      // dominant oscillation frequency from zero crossings
	Amplitude        float64 `json:"amplitude"`         // RMS of the high-pass filtered signal
	PeakAmplitude    float64 `json:"peak_amplitude"`    // max absolute filtered sample
	Regularity       float64 `json:"regularity"`        // 0-1, rhythmic consistency of the oscillation
	InTremorRange    bool    `json:"in_tremor_range"`   // frequency within the 4-6 Hz band
	ZeroCrossings    int     `json:"zero_crossings"`    // sign changes in the filtered signal
	DurationSec      float64 `json:"duration_sec"`      // capture span from observed timestamps
	InsufficientData bool    `json:"insufficient_data"` // too few samples to analyze
}
