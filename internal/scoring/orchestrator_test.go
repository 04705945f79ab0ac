package scoring

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkinsense/symptom-engine/configs"
	"github.com/parkinsense/symptom-engine/pkg/session"
	"github.com/parkinsense/symptom-engine/pkg/tremor"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

const testSampleRate = 16000

// encodeWAV writes a 16-bit mono WAV file and returns its raw bytes.
func encodeWAV(t *testing.T, samples []float64, sampleRate int) []byte {
	t.Helper()

	path := writeWAVFile(t, samples, sampleRate)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}

func writeWAVFile(t *testing.T, samples []float64, sampleRate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "capture.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s * 32767.0)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
	return path
}

// spokenPhrase synthesizes three voiced stretches separated by silence:
// 1.2s of 150 Hz tone, 0.5s gap, repeated.
func spokenPhrase() []float64 {
	var samples []float64
	toneLen := int(1.2 * float64(testSampleRate))
	gap := make([]float64, int(0.5*float64(testSampleRate)))
	tone := make([]float64, toneLen)
	for i := range tone {
		tone[i] = 0.4 * math.Sin(2*math.Pi*150.0*float64(i)/float64(testSampleRate))
	}
	for i := 0; i < 3; i++ {
		if i > 0 {
			samples = append(samples, gap...)
		}
		samples = append(samples, tone...)
	}
	return samples
}

// motionCapture synthesizes accelerometer magnitudes at a 10ms cadence:
// gravity plus a sinusoidal oscillation.
func motionCapture(freqHz, amplitude, durationSec float64) []tremor.Sample {
	n := int(durationSec * 100)
	samples := make([]tremor.Sample, n)
	for i := range samples {
		ts := float64(i) / 100.0
		samples[i] = tremor.Sample{
			Magnitude: 9.81 + amplitude*math.Sin(2*math.Pi*freqHz*ts),
			ElapsedMs: float64(i) * 10.0,
		}
	}
	return samples
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(configs.GetDefaultConfig(), nil)
	require.NoError(t, err)
	return o
}

func TestNewOrchestratorDefaults(t *testing.T) {
	o, err := NewOrchestrator(nil, nil)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.NotNil(t, o.config)
	assert.NotNil(t, o.tremor)
	assert.NotNil(t, o.logger)
}

func TestNewOrchestratorRejectsInvalidConfig(t *testing.T) {
	cfg := configs.GetDefaultConfig()
	cfg.Voice.Scoring.Scheme = "bogus"

	o, err := NewOrchestrator(cfg, nil)
	require.Error(t, err)
	assert.Nil(t, o)
	assert.Contains(t, err.Error(), "invalid scoring configuration")
}

func TestAnalyzeVoiceWAVFullPipeline(t *testing.T) {
	o := newTestOrchestrator(t)
	raw := encodeWAV(t, spokenPhrase(), testSampleRate)

	result, err := o.AnalyzeVoiceWAV(raw, voice.TargetPhrase, 0)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.InsufficientData)
	assert.Equal(t, voice.TargetWordCount, result.WordCount)
	assert.Equal(t, 2, result.PauseCount)
	assert.InDelta(t, 3.6, result.SpeakingDurationSec, 0.05)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 10.0)
}

func TestAnalyzeVoiceWAVRejectsGarbage(t *testing.T) {
	o := newTestOrchestrator(t)

	result, err := o.AnalyzeVoiceWAV([]byte("definitely not a RIFF container"), "", 0)
	require.Error(t, err)
	assert.Nil(t, result)

	var sessionErr *session.Error
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, session.ErrCodeDecoding, sessionErr.Code)
}

func TestAnalyzeVoiceWAVRejectsShortRecording(t *testing.T) {
	o := newTestOrchestrator(t)

	blip := make([]float64, int(0.3*float64(testSampleRate)))
	for i := range blip {
		blip[i] = 0.4 * math.Sin(2*math.Pi*150.0*float64(i)/float64(testSampleRate))
	}
	raw := encodeWAV(t, blip, testSampleRate)

	result, err := o.AnalyzeVoiceWAV(raw, voice.TargetPhrase, 0)
	require.Error(t, err)
	assert.Nil(t, result)

	var sessionErr *session.Error
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, session.ErrCodeInvalidInput, sessionErr.Code)
	assert.Contains(t, err.Error(), "too short")
}

func TestAnalyzeVoiceFileMissing(t *testing.T) {
	o := newTestOrchestrator(t)

	result, err := o.AnalyzeVoiceFile(filepath.Join(t.TempDir(), "absent.wav"), "", 0)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to read audio file")
}

func TestAnalyzeVoiceFilesBatch(t *testing.T) {
	o := newTestOrchestrator(t)
	first := writeWAVFile(t, spokenPhrase(), testSampleRate)
	second := writeWAVFile(t, spokenPhrase(), testSampleRate)

	batch, err := o.AnalyzeVoiceFiles([]string{first, second}, voice.TargetPhrase, 0)
	require.NoError(t, err)
	require.NotNil(t, batch)

	assert.Len(t, batch.Results, 2)
	assert.Equal(t, 2, batch.Score.Count)
	assert.Equal(t, batch.Results[0].Score, batch.Results[1].Score,
		"identical recordings score identically")
	assert.Equal(t, batch.Results[0].Score, batch.Score.Mean)
	assert.Zero(t, batch.InsufficientCount)
}

func TestAnalyzeVoiceFilesEmpty(t *testing.T) {
	o := newTestOrchestrator(t)

	batch, err := o.AnalyzeVoiceFiles(nil, "", 0)
	require.Error(t, err)
	assert.Nil(t, batch)
}

func TestAnalyzeVoiceFilesFailFast(t *testing.T) {
	o := newTestOrchestrator(t)
	good := writeWAVFile(t, spokenPhrase(), testSampleRate)
	bad := filepath.Join(t.TempDir(), "missing.wav")

	batch, err := o.AnalyzeVoiceFiles([]string{good, bad}, voice.TargetPhrase, 0)
	require.Error(t, err)
	assert.Nil(t, batch)
	assert.Contains(t, err.Error(), "missing.wav")
}

func TestAnalyzeVoiceSnapshot(t *testing.T) {
	o := newTestOrchestrator(t)

	sess := session.New(session.KindVoice, testSampleRate)
	require.NoError(t, sess.PushPCMBlock(spokenPhrase()))
	require.NoError(t, sess.PushTranscript(voice.TargetPhrase, 0))
	snap := sess.Seal()

	result := o.AnalyzeVoiceSnapshot(snap)
	require.NotNil(t, result)
	assert.False(t, result.InsufficientData)
	assert.Equal(t, voice.TargetWordCount, result.WordCount)
	assert.Equal(t, 2, result.PauseCount)
}

func TestAnalyzeTremorSamples(t *testing.T) {
	o := newTestOrchestrator(t)

	result := o.AnalyzeTremorSamples(motionCapture(5.0, 8.0, 10.0))
	require.NotNil(t, result)
	assert.True(t, result.InTremorRange)
	assert.InDelta(t, 5.0, result.FrequencyHz, 0.25)
	assert.Equal(t, tremor.LabelSevere, result.Severity)
}

func TestAnalyzeTremorSnapshot(t *testing.T) {
	o := newTestOrchestrator(t)

	sess := session.New(session.KindTremor, 0)
	for _, s := range motionCapture(5.0, 8.0, 10.0) {
		require.NoError(t, sess.PushAmplitude(s.Magnitude, s.ElapsedMs))
	}
	snap := sess.Seal()

	result := o.AnalyzeTremorSnapshot(snap)
	require.NotNil(t, result)
	assert.True(t, result.InTremorRange)
	assert.Equal(t, tremor.LabelSevere, result.Severity)
}

func TestAnalyzeTremorFilesAggregates(t *testing.T) {
	o := newTestOrchestrator(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "capture.json")
	writeTremorJSON(t, path, motionCapture(5.0, 8.0, 10.0))

	calm := filepath.Join(dir, "calm.json")
	writeTremorJSON(t, calm, motionCapture(0.3, 0.5, 10.0))

	batch, err := o.AnalyzeTremorFiles([]string{path, calm})
	require.NoError(t, err)
	require.NotNil(t, batch)

	assert.Len(t, batch.Results, 2)
	assert.Equal(t, 2, batch.Score.Count)
	assert.Equal(t, 1, batch.InBandCount)
	assert.Equal(t, 1, batch.SeverityCounts[tremor.LabelSevere])
	assert.Equal(t, 1, batch.SeverityCounts[tremor.LabelMinimal])
}

func TestProbeWAV(t *testing.T) {
	o := newTestOrchestrator(t)
	raw := encodeWAV(t, spokenPhrase(), testSampleRate)

	probe, err := o.ProbeWAV(raw)
	require.NoError(t, err)
	require.NotNil(t, probe)

	assert.Equal(t, testSampleRate, probe.SampleRate)
	assert.Equal(t, 1, probe.Channels)
	assert.Equal(t, 16, probe.BitDepth)
	assert.InDelta(t, 4.6, probe.DurationSec, 0.01)
	assert.Equal(t, 3, probe.SegmentCount)
	assert.Equal(t, 2, probe.PauseCount)
	assert.InDelta(t, 3.6, probe.SpeakingSec, 0.05)
	assert.InDelta(t, 0.4, probe.PeakAmplitude, 0.005)
	assert.Greater(t, probe.RMS, 0.0)
}

func TestProbeWAVRejectsGarbage(t *testing.T) {
	o := newTestOrchestrator(t)

	probe, err := o.ProbeWAV([]byte("xx"))
	require.Error(t, err)
	assert.Nil(t, probe)
}

func TestProbeFile(t *testing.T) {
	o := newTestOrchestrator(t)
	path := writeWAVFile(t, spokenPhrase(), testSampleRate)

	probe, err := o.ProbeFile(path)
	require.NoError(t, err)
	assert.Equal(t, testSampleRate, probe.SampleRate)

	_, err = o.ProbeFile(filepath.Join(t.TempDir(), "nope.wav"))
	require.Error(t, err)
}
