package voice

import (
	"github.com/parkinsense/symptom-engine/pkg/dsp"
)

// DetectVOT measures voice onset time directly from the waveform,
// independently of the pitch tracker. Plosive bursts are found on a
// 5 ms / 2.5 ms RMS envelope against a sliding 50 ms baseline median;
// voicing onset after each burst is confirmed by short-window
// autocorrelation, falling back to a sustained-envelope test. Up to five
// measurements inside [5, 200] ms are averaged.
func DetectVOT(samples []float64, sampleRate int, cfg VOTConfig) VOTResult {
	result := VOTResult{}
	if sampleRate <= 0 || len(samples) == 0 {
		return result
	}

	winSize := int(cfg.EnvelopeWindowSec * float64(sampleRate))
	hopSize := int(cfg.EnvelopeHopSec * float64(sampleRate))
	if winSize < 1 || hopSize < 1 || len(samples) < winSize {
		return result
	}

	envelope := rmsEnvelope(samples, winSize, hopSize)
	if len(envelope) < 2 {
		return result
	}

	hopMs := cfg.EnvelopeHopSec * 1000.0
	bursts := detectBursts(envelope, hopMs, cfg)
	result.BurstCount = len(bursts)
	if len(bursts) == 0 {
		return result
	}

	for _, burst := range bursts {
		votMs, ok := confirmOnset(samples, sampleRate, envelope, burst, cfg)
		if !ok {
			continue
		}
		if votMs < cfg.MinVOTMs || votMs > cfg.MaxVOTMs {
			continue
		}
		result.Measurements = append(result.Measurements, votMs)
	}

	if len(result.Measurements) == 0 {
		return result
	}

	avg := dsp.Mean(result.Measurements)
	result.AvgMs = f64Ptr(avg)
	result.Severity = f64Ptr(classifyVOTSeverity(avg))
	return result
}

// Metric reduces the VOT result to its composer-facing form.
func (r VOTResult) Metric() MetricResult {
	return MetricResult{Value: r.AvgMs, Severity: r.Severity}
}

// classifyVOTSeverity bands the average voice onset time (ms).
func classifyVOTSeverity(avgMs float64) float64 {
	if avgMs <= votBandNone {
		return SeverityNone
	} else if avgMs <= votBandMinimal {
		return SeverityMinimal
	} else if avgMs <= votBandMild {
		return SeverityMild
	}
	return SeverityMax
}

func rmsEnvelope(samples []float64, winSize, hopSize int) []float64 {
	frameCount := (len(samples)-winSize)/hopSize + 1
	envelope := make([]float64, frameCount)
	for i := 0; i < frameCount; i++ {
		start := i * hopSize
		envelope[i] = dsp.RMS(samples[start : start+winSize])
	}
	return envelope
}

// detectBursts finds plosive release candidates: envelope frames that
// exceed both the burst floor and BurstRatio times the median of the
// preceding baseline window, spaced at least MinBurstSpacingMs apart.
func detectBursts(envelope []float64, hopMs float64, cfg VOTConfig) []int {
	baselineFrames := int(cfg.BaselineSec * 1000.0 / hopMs)
	if baselineFrames < 1 {
		baselineFrames = 1
	}
	spacingFrames := int(cfg.MinBurstSpacingMs / hopMs)
	if spacingFrames < 1 {
		spacingFrames = 1
	}

	baseline := dsp.NewSlidingMedian(baselineFrames)
	bursts := []int{}
	lastBurst := -spacingFrames

	for j, v := range envelope {
		if j > 0 && len(bursts) < cfg.MaxBursts && j-lastBurst >= spacingFrames {
			if v > cfg.BurstFloor && v > cfg.BurstRatio*baseline.Median() {
				bursts = append(bursts, j)
				lastBurst = j
			}
		}
		baseline.Push(v)
	}
	return bursts
}

// confirmOnset scans forward from a burst frame in envelope-hop steps,
// looking for voicing. Primary test: VoicingConsecutive successive 15 ms
// windows whose normalized autocorrelation peak in the pitch lag range
// clears VoicingThreshold. Fallback when autocorrelation never confirms:
// EnvelopeOnsetRuns successive envelope frames above EnvelopeOnsetRMS.
// Returns the elapsed ms from burst to the first confirming frame.
func confirmOnset(samples []float64, sampleRate int, envelope []float64, burst int, cfg VOTConfig) (float64, bool) {
	hopSize := int(cfg.EnvelopeHopSec * float64(sampleRate))
	hopMs := cfg.EnvelopeHopSec * 1000.0
	maxSteps := int(cfg.OnsetScanMaxMs / hopMs)

	voicingWin := int(cfg.VoicingWindowSec * float64(sampleRate))
	minLag := int(float64(sampleRate) / cfg.VoicingMaxHz)
	maxLag := int(float64(sampleRate) / cfg.VoicingMinHz)
	if minLag < 1 {
		minLag = 1
	}

	consecutive := 0
	for k := 1; k <= maxSteps; k++ {
		pos := (burst + k) * hopSize
		if pos+voicingWin > len(samples) {
			break
		}
		_, peak := dsp.BestLagInRange(samples[pos:pos+voicingWin], minLag, maxLag)
		if peak > cfg.VoicingThreshold {
			consecutive++
			if consecutive >= cfg.VoicingConsecutive {
				first := k - cfg.VoicingConsecutive + 1
				return float64(first) * hopMs, true
			}
		} else {
			consecutive = 0
		}
	}

	consecutive = 0
	for k := 1; k <= maxSteps; k++ {
		j := burst + k
		if j >= len(envelope) {
			break
		}
		if envelope[j] > cfg.EnvelopeOnsetRMS {
			consecutive++
			if consecutive >= cfg.EnvelopeOnsetRuns {
				first := k - cfg.EnvelopeOnsetRuns + 1
				return float64(first) * hopMs, true
			}
		} else {
			consecutive = 0
		}
	}

	return 0, false
}
