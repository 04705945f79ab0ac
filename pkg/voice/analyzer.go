package voice

import (
	"github.com/parkinsense/symptom-engine/pkg/dsp"
	"github.com/parkinsense/symptom-engine/pkg/logging"
)

// Analyzer runs the full voice pipeline over one sealed capture. The
// sub-analyzers are pure functions; Analyzer only wires them together,
// carries the tuning configuration, and logs progress.
type Analyzer struct {
	config Config
	logger logging.Logger
}

// NewAnalyzer creates a voice analyzer with the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Scheme == "" {
		cfg.Scheme = SchemeSeverity
	}
	return &Analyzer{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "voice_analyzer",
			"scheme":    cfg.Scheme,
		}),
	}
}

// Input is the sealed capture handed to one analysis pass. Timeline may be
// empty when only audio was captured; it is then derived from the
// waveform. WordCount of 0 falls back to counting transcript words.
type Input struct {
	Timeline   []AmplitudeSample
	Waveform   []float64
	SampleRate int
	Transcript string
	WordCount  int
}

// Analyze produces the immutable voice result for a sealed capture. Data
// quality problems degrade the result (insufficient-data flag, nil
// sub-metrics, maximum composer penalties); they never return an error.
func (a *Analyzer) Analyze(in Input) *Result {
	sampleRate := in.SampleRate
	if sampleRate <= 0 {
		sampleRate = a.config.SampleRate
	}

	timeline := in.Timeline
	if len(timeline) == 0 && len(in.Waveform) > 0 {
		timeline = BuildTimeline(in.Waveform, sampleRate)
	}

	wordCount := in.WordCount
	if wordCount == 0 {
		wordCount = CountWords(in.Transcript)
	}

	a.logger.Debug("starting voice analysis", logging.Fields{
		"timeline_samples": len(timeline),
		"waveform_samples": len(in.Waveform),
		"sample_rate":      sampleRate,
		"word_count":       wordCount,
	})

	if len(timeline) < MinTimelineSamples {
		a.logger.Warn("insufficient capture data", logging.Fields{
			"timeline_samples": len(timeline),
			"required":         MinTimelineSamples,
		})
		return &Result{
			Scheme:           a.config.Scheme,
			WordCount:        wordCount,
			RecommendRetake:  true,
			InsufficientData: true,
		}
	}

	seg := DetectSegments(timeline, a.config.Segments)

	var (
		contour  F0Contour
		shimmer  ShimmerResult
		vot      VOTResult
		vowels   MetricResult
		spectral *SpectralFeatures
		meanHNR  float64
		hasHNR   bool
	)
	if len(in.Waveform) > 0 {
		contour = TrackF0(in.Waveform, sampleRate, a.config.F0)
		shimmer = AnalyzeShimmer(in.Waveform, sampleRate, contour)
		meanHNR, hasHNR = EstimateHNR(contour)
		vowels = AnalyzeVowelClarity(in.Waveform, sampleRate, a.config)
		vot = DetectVOT(in.Waveform, sampleRate, a.config.VOT)
		spectral = ExtractSpectralFeatures(in.Waveform, sampleRate, a.config.Spectral)
	}

	fatigue := AnalyzeFatigue(timeline, seg.Threshold)
	metrics := Metrics{
		VOT:         vot.Metric(),
		Transitions: AnalyzeTransitions(timeline, seg.Segments, seg.SecondsPerReading),
		Fatigue:     fatigue.Metric,
		Vowels:      vowels,
		Steadiness:  AnalyzeSteadiness(timeline),
	}

	amplitudes := make([]float64, len(timeline))
	for i, s := range timeline {
		amplitudes[i] = s.Amplitude
	}
	variance := dsp.Variance(amplitudes)

	var speakingRate float64
	if seg.SpeakingDurationSec > dsp.EpsilonDenominator {
		speakingRate = float64(wordCount) / (seg.SpeakingDurationSec / 60.0)
	}

	var score float64
	if a.config.Scheme == SchemeAcoustic {
		score = ComposeAcousticScore(AcousticScoreInput{
			F0StdDev:            contour.F0StdDev,
			JitterPercent:       contour.JitterPercent,
			ShimmerPercent:      shimmer.Percent,
			AmplitudeDecay:      fatigue.AmplitudeDecay,
			MeanHNRDb:           meanHNR,
			SpeakingDurationSec: seg.SpeakingDurationSec,
		})
	} else {
		score = ComposeSeverityScore(SeverityScoreInput{
			SpeakingDurationSec: seg.SpeakingDurationSec,
			PauseCount:          seg.PauseCount,
			WordCount:           wordCount,
			Metrics:             metrics,
		})
	}

	details := map[string]any{
		"silence_threshold":   seg.Threshold,
		"seconds_per_reading": seg.SecondsPerReading,
		"segment_count":       len(seg.Segments),
		"mean_f0_hz":          contour.MeanF0,
		"f0_std_hz":           contour.F0StdDev,
		"f0_range_hz":         contour.F0Range,
		"jitter_percent":      contour.JitterPercent,
		"voiced_ratio":        contour.VoicedRatio,
		"shimmer_percent":     shimmer.Percent,
		"shimmer_db":          shimmer.Db,
		"vot_burst_count":     vot.BurstCount,
		"matched_words":       MatchedUniqueTargets(in.Transcript),
	}
	if hasHNR {
		details["mean_hnr_db"] = meanHNR
	}

	result := &Result{
		Score:               score,
		Scheme:              a.config.Scheme,
		SpeakingDurationSec: seg.SpeakingDurationSec,
		PauseCount:          seg.PauseCount,
		AmplitudeVariance:   variance,
		SpeakingRateWPM:     speakingRate,
		WordCount:           wordCount,
		Metrics:             metrics,
		Spectral:            spectral,
		Details:             details,
		RecommendRetake:     RecommendRetake(wordCount, in.Transcript, metrics),
	}

	a.logger.Debug("voice analysis completed", logging.Fields{
		"score":            result.Score,
		"speaking_sec":     result.SpeakingDurationSec,
		"pause_count":      result.PauseCount,
		"recommend_retake": result.RecommendRetake,
	})

	return result
}
