package tremor

import (
	"math"

	"github.com/parkinsense/symptom-engine/pkg/dsp"
	"github.com/parkinsense/symptom-engine/pkg/logging"
)

// Analyzer runs the motion pipeline over one sealed capture: high-pass
// filtering, zero-crossing frequency estimation, amplitude and regularity
// measurement, and score composition.
type Analyzer struct {
	config Config
	logger logging.Logger
}

// NewAnalyzer creates a tremor analyzer with the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.HighPassAlpha <= 0 || cfg.HighPassAlpha >= 1 {
		cfg.HighPassAlpha = DefaultConfig().HighPassAlpha
	}
	return &Analyzer{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "tremor_analyzer",
		}),
	}
}

// Analyze produces the immutable tremor result for one capture. Short or
// degenerate captures yield the zero-score insufficient-data result, never
// an error.
func (a *Analyzer) Analyze(samples []Sample) *Result {
	a.logger.Debug("starting tremor analysis", logging.Fields{
		"sample_count": len(samples),
	})

	if len(samples) < MinSampleCount {
		a.logger.Warn("insufficient capture data", logging.Fields{
			"sample_count": len(samples),
			"required":     MinSampleCount,
		})
		return insufficientResult()
	}

	durationSec := (samples[len(samples)-1].ElapsedMs - samples[0].ElapsedMs) / 1000.0
	if durationSec < dsp.EpsilonDenominator {
		return insufficientResult()
	}

	magnitudes := make([]float64, len(samples))
	for i, s := range samples {
		magnitudes[i] = s.Magnitude
	}
	filtered := dsp.HighPass(magnitudes, a.config.HighPassAlpha)

	crossings := dsp.ZeroCrossings(filtered)
	frequency := float64(crossings) / 2.0 / durationSec

	amplitude := dsp.RMS(filtered)
	var peak float64
	for _, v := range filtered {
		if abs := math.Abs(v); abs > peak {
			peak = abs
		}
	}

	reg := regularity(filtered)
	result := &Result{
		Score:         ComposeScore(amplitude, frequency, reg),
		FrequencyHz:   frequency,
		Amplitude:     amplitude,
		PeakAmplitude: peak,
		Regularity:    reg,
		InTremorRange: InTremorRange(frequency),
		ZeroCrossings: crossings,
		DurationSec:   durationSec,
	}
	result.Severity = ClassifySeverity(result.Score)

	a.logger.Debug("tremor analysis completed", logging.Fields{
		"score":           result.Score,
		"severity":        result.Severity,
		"frequency_hz":    result.FrequencyHz,
		"in_tremor_range": result.InTremorRange,
	})

	return result
}

// InTremorRange reports whether the frequency falls inside the 4-6 Hz
// Parkinsonian band, boundaries inclusive.
func InTremorRange(frequencyHz float64) bool {
	return frequencyHz >= TremorBandLowHz && frequencyHz <= TremorBandHighHz
}

// regularity measures rhythmic consistency as 1 minus the relative spread
// of the rectified filtered signal, floored at 0.
func regularity(filtered []float64) float64 {
	abs := make([]float64, len(filtered))
	for i, v := range filtered {
		abs[i] = math.Abs(v)
	}
	mean := dsp.Mean(abs)
	if mean < dsp.EpsilonDenominator {
		return 0
	}
	return math.Max(0, 1.0-dsp.StdDev(abs)/mean)
}

func insufficientResult() *Result {
	return &Result{
		Severity:         LabelMinimal,
		InsufficientData: true,
	}
}
