package scoring

import (
	"github.com/parkinsense/symptom-engine/pkg/dsp"
	"github.com/parkinsense/symptom-engine/pkg/logging"
	"github.com/parkinsense/symptom-engine/pkg/tremor"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

// ScoreStats summarizes one numeric series across a batch of captures.
type ScoreStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// VoiceBatch aggregates the scored recordings of one assessment run.
// Captures flagged insufficient are counted but excluded from the
// numeric series; their zero scores are absence of data, not readings.
type VoiceBatch struct {
	Results           []*voice.Result `json:"results"`
	Score             *ScoreStats     `json:"score"`
	SpeakingRateWPM   *ScoreStats     `json:"speaking_rate_wpm"`
	PauseCount        *ScoreStats     `json:"pause_count"`
	RetakeCount       int             `json:"retake_count"`
	InsufficientCount int             `json:"insufficient_count"`
}

// TremorBatch aggregates the scored motion captures of one assessment run.
type TremorBatch struct {
	Results           []*tremor.Result `json:"results"`
	Score             *ScoreStats      `json:"score"`
	FrequencyHz       *ScoreStats      `json:"frequency_hz"`
	Amplitude         *ScoreStats      `json:"amplitude"`
	InBandCount       int              `json:"in_band_count"`
	SeverityCounts    map[string]int   `json:"severity_counts"`
	InsufficientCount int              `json:"insufficient_count"`
}

// MetricsCalculator computes summary statistics over batches of results.
type MetricsCalculator struct {
	logger logging.Logger
}

// NewMetricsCalculator creates a calculator with the given logger
func NewMetricsCalculator(logger logging.Logger) *MetricsCalculator {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &MetricsCalculator{
		logger: logger.WithFields(logging.Fields{"component": "metrics_calculator"}),
	}
}

// SummarizeVoice aggregates a batch of voice results.
func (mc *MetricsCalculator) SummarizeVoice(results []*voice.Result) *VoiceBatch {
	batch := &VoiceBatch{Results: results}

	scores := make([]float64, 0, len(results))
	rates := make([]float64, 0, len(results))
	pauses := make([]float64, 0, len(results))
	for _, r := range results {
		if r.RecommendRetake {
			batch.RetakeCount++
		}
		if r.InsufficientData {
			batch.InsufficientCount++
			continue
		}
		scores = append(scores, r.Score)
		rates = append(rates, r.SpeakingRateWPM)
		pauses = append(pauses, float64(r.PauseCount))
	}

	batch.Score = mc.calculateStats(scores)
	batch.SpeakingRateWPM = mc.calculateStats(rates)
	batch.PauseCount = mc.calculateStats(pauses)

	mc.logger.Debug("Voice batch summarized", logging.Fields{
		"recordings":   len(results),
		"mean_score":   batch.Score.Mean,
		"retakes":      batch.RetakeCount,
		"insufficient": batch.InsufficientCount,
	})

	return batch
}

// SummarizeTremor aggregates a batch of tremor results.
func (mc *MetricsCalculator) SummarizeTremor(results []*tremor.Result) *TremorBatch {
	batch := &TremorBatch{
		Results:        results,
		SeverityCounts: make(map[string]int),
	}

	scores := make([]float64, 0, len(results))
	freqs := make([]float64, 0, len(results))
	amps := make([]float64, 0, len(results))
	for _, r := range results {
		if r.InsufficientData {
			batch.InsufficientCount++
			continue
		}
		batch.SeverityCounts[r.Severity]++
		if r.InTremorRange {
			batch.InBandCount++
		}
		scores = append(scores, r.Score)
		freqs = append(freqs, r.FrequencyHz)
		amps = append(amps, r.Amplitude)
	}

	batch.Score = mc.calculateStats(scores)
	batch.FrequencyHz = mc.calculateStats(freqs)
	batch.Amplitude = mc.calculateStats(amps)

	mc.logger.Debug("Tremor batch summarized", logging.Fields{
		"captures":     len(results),
		"mean_score":   batch.Score.Mean,
		"in_band":      batch.InBandCount,
		"insufficient": batch.InsufficientCount,
	})

	return batch
}

func (mc *MetricsCalculator) calculateStats(values []float64) *ScoreStats {
	if len(values) == 0 {
		return &ScoreStats{Count: 0}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return &ScoreStats{
		Mean:   dsp.Mean(values),
		Median: dsp.Median(values),
		P95:    dsp.Percentile(values, 95),
		Min:    min,
		Max:    max,
		StdDev: dsp.StdDev(values),
		Count:  len(values),
	}
}
