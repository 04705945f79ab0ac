package scoring

import (
	"fmt"
	"math"
	"os"

	"github.com/parkinsense/symptom-engine/configs"
	"github.com/parkinsense/symptom-engine/pkg/audio"
	"github.com/parkinsense/symptom-engine/pkg/dsp"
	"github.com/parkinsense/symptom-engine/pkg/logging"
	"github.com/parkinsense/symptom-engine/pkg/session"
	"github.com/parkinsense/symptom-engine/pkg/tremor"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

// Orchestrator wires configuration and logging around the pure analyzers.
// It owns decoding and the capture-length gate; everything past the gate
// degrades the result instead of failing.
type Orchestrator struct {
	config *configs.Config
	tremor *tremor.Analyzer
	logger logging.Logger
}

// NewOrchestrator creates an orchestrator from a validated config
func NewOrchestrator(config *configs.Config, logger logging.Logger) (*Orchestrator, error) {
	if config == nil {
		config = configs.GetDefaultConfig()
	}
	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid scoring configuration: %w", err)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Orchestrator{
		config: config,
		tremor: tremor.NewAnalyzer(config.Tremor.AnalyzerConfig()),
		logger: logger.WithFields(logging.Fields{"component": "scoring"}),
	}, nil
}

// AnalyzeVoiceWAV decodes a WAV payload and scores it. Undecodable or
// too-short audio is rejected with a typed error so transports can map
// it to a client fault.
func (o *Orchestrator) AnalyzeVoiceWAV(data []byte, transcript string, wordCount int) (*voice.Result, error) {
	pcm, err := audio.DecodeWAVBytes(data)
	if err != nil {
		return nil, session.NewError("", session.ErrCodeDecoding, "undecodable WAV payload", err)
	}

	if pcm.Duration() < o.config.Audio.MinDurationSec {
		return nil, session.NewError("", session.ErrCodeInvalidInput,
			fmt.Sprintf("recording too short: %.2fs, need at least %.2fs",
				pcm.Duration(), o.config.Audio.MinDurationSec), nil)
	}

	o.logger.Debug("Scoring voice capture", logging.Fields{
		"sample_rate":  pcm.SampleRate,
		"duration_sec": pcm.Duration(),
		"word_count":   wordCount,
	})

	analyzer := voice.NewAnalyzer(o.config.Voice.AnalyzerConfig(pcm.SampleRate))
	return analyzer.Analyze(voice.Input{
		Waveform:   pcm.Samples,
		SampleRate: pcm.SampleRate,
		Transcript: transcript,
		WordCount:  wordCount,
	}), nil
}

// AnalyzeVoiceFile reads one recording from disk and scores it.
func (o *Orchestrator) AnalyzeVoiceFile(path, transcript string, wordCount int) (*voice.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return o.AnalyzeVoiceWAV(data, transcript, wordCount)
}

// AnalyzeVoiceFiles scores a batch of recordings of the same phrase and
// aggregates the scores. Recordings are processed in order; the first
// failure aborts the batch.
func (o *Orchestrator) AnalyzeVoiceFiles(paths []string, transcript string, wordCount int) (*VoiceBatch, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no audio files provided")
	}

	results := make([]*voice.Result, 0, len(paths))
	for _, path := range paths {
		result, err := o.AnalyzeVoiceFile(path, transcript, wordCount)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, result)
	}

	return NewMetricsCalculator(o.logger).SummarizeVoice(results), nil
}

// AnalyzeVoiceSnapshot scores a sealed voice session.
func (o *Orchestrator) AnalyzeVoiceSnapshot(snap session.Snapshot) *voice.Result {
	analyzer := voice.NewAnalyzer(o.config.Voice.AnalyzerConfig(snap.SampleRate))
	return analyzer.Analyze(snap.VoiceInput())
}

// AnalyzeTremorSamples scores one motion capture.
func (o *Orchestrator) AnalyzeTremorSamples(samples []tremor.Sample) *tremor.Result {
	return o.tremor.Analyze(samples)
}

// AnalyzeTremorSnapshot scores a sealed tremor session.
func (o *Orchestrator) AnalyzeTremorSnapshot(snap session.Snapshot) *tremor.Result {
	return o.tremor.Analyze(snap.Motion)
}

// AnalyzeTremorFiles loads motion captures from disk and aggregates
// their scores.
func (o *Orchestrator) AnalyzeTremorFiles(paths []string) (*TremorBatch, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no sample files provided")
	}

	results := make([]*tremor.Result, 0, len(paths))
	for _, path := range paths {
		samples, err := LoadTremorSamples(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, o.tremor.Analyze(samples))
	}

	return NewMetricsCalculator(o.logger).SummarizeTremor(results), nil
}

// WAVProbe reports container and segmentation diagnostics for one
// recording, without scoring it.
type WAVProbe struct {
	SampleRate    int     `json:"sample_rate"`
	Channels      int     `json:"channels"`
	BitDepth      int     `json:"bit_depth"`
	DurationSec   float64 `json:"duration_sec"`
	SampleCount   int     `json:"sample_count"`
	RMS           float64 `json:"rms"`
	PeakAmplitude float64 `json:"peak_amplitude"`
	SegmentCount  int     `json:"segment_count"`
	SpeakingSec   float64 `json:"speaking_sec"`
	PauseCount    int     `json:"pause_count"`
}

// ProbeWAV decodes a recording and summarizes what the analyzer would
// see. Used by the wav-test command to debug capture pipelines.
func (o *Orchestrator) ProbeWAV(data []byte) (*WAVProbe, error) {
	pcm, err := audio.DecodeWAVBytes(data)
	if err != nil {
		return nil, err
	}

	peak := 0.0
	for _, s := range pcm.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	cfg := o.config.Voice.AnalyzerConfig(pcm.SampleRate)
	timeline := voice.BuildTimeline(pcm.Samples, pcm.SampleRate)
	seg := voice.DetectSegments(timeline, cfg.Segments)

	return &WAVProbe{
		SampleRate:    pcm.SampleRate,
		Channels:      pcm.Channels,
		BitDepth:      pcm.BitDepth,
		DurationSec:   dsp.RoundTo(pcm.Duration(), 3),
		SampleCount:   len(pcm.Samples),
		RMS:           dsp.RoundTo(dsp.RMS(pcm.Samples), 4),
		PeakAmplitude: dsp.RoundTo(peak, 4),
		SegmentCount:  len(seg.Segments),
		SpeakingSec:   dsp.RoundTo(seg.SpeakingDurationSec, 2),
		PauseCount:    seg.PauseCount,
	}, nil
}

// ProbeFile reads one recording from disk and probes it.
func (o *Orchestrator) ProbeFile(path string) (*WAVProbe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return o.ProbeWAV(data)
}
