package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkinsense/symptom-engine/pkg/tremor"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()

	config, err := LoadConfigFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "table", config.OutputFormat)
	assert.Equal(t, voice.DefaultSampleRate, config.Audio.SampleRate)
	assert.Equal(t, 1, config.Audio.Channels)
	assert.InDelta(t, 1.0, config.Audio.MinDurationSec, 1e-9)
	assert.Equal(t, voice.SchemeSeverity, config.Voice.Scoring.Scheme)
	assert.InDelta(t, voice.DefaultConfig().Segments.MinPauseDurationSec, config.Voice.MinPauseDurationSec, 1e-9)
	assert.InDelta(t, tremor.DefaultConfig().HighPassAlpha, config.Tremor.HighPassAlpha, 1e-9)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, 15*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 3, config.Output.Precision)

	assert.NoError(t, ValidateConfig(config))
}

func TestLoadConfigOverrides(t *testing.T) {
	v := viper.New()
	v.Set("voice.scoring.scheme", voice.SchemeAcoustic)
	v.Set("tremor.high_pass_alpha", 0.9)
	v.Set("server.addr", ":9090")
	v.Set("audio.sample_rate", 16000)

	config, err := LoadConfigFrom(v)
	require.NoError(t, err)

	assert.Equal(t, voice.SchemeAcoustic, config.Voice.Scoring.Scheme)
	assert.InDelta(t, 0.9, config.Tremor.HighPassAlpha, 1e-9)
	assert.Equal(t, ":9090", config.Server.Addr)
	assert.Equal(t, 16000, config.Audio.SampleRate)

	// Untouched keys keep their defaults.
	assert.Equal(t, "info", config.LogLevel)
	assert.NoError(t, ValidateConfig(config))
}

func TestValidateConfigGuards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown scheme", func(c *Config) { c.Voice.Scoring.Scheme = "hybrid" }, "scoring scheme"},
		{"alpha above one", func(c *Config) { c.Tremor.HighPassAlpha = 1.2 }, "alpha"},
		{"alpha zero", func(c *Config) { c.Tremor.HighPassAlpha = 0 }, "alpha"},
		{"zero sample rate", func(c *Config) { c.Audio.SampleRate = 0 }, "sample rate"},
		{"zero channels", func(c *Config) { c.Audio.Channels = 0 }, "channels"},
		{"negative silence threshold", func(c *Config) { c.Voice.SilenceThreshold = -0.1 }, "silence threshold"},
		{"zero pause duration", func(c *Config) { c.Voice.MinPauseDurationSec = 0 }, "pause duration"},
		{"empty server addr", func(c *Config) { c.Server.Addr = "" }, "address"},
		{"negative precision", func(c *Config) { c.Output.Precision = -1 }, "precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			require.NoError(t, ValidateConfig(config))

			tt.mutate(config)
			err := ValidateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVoiceAnalyzerConfigBridge(t *testing.T) {
	vc := VoiceConfig{
		SilenceThreshold:    0.02,
		MinPauseDurationSec: 0.5,
		Scoring:             ScoringConfig{Scheme: voice.SchemeAcoustic},
	}

	cfg := vc.AnalyzerConfig(16000)
	assert.Equal(t, 16000, cfg.SampleRate)
	assert.Equal(t, voice.SchemeAcoustic, cfg.Scheme)
	assert.InDelta(t, 0.02, cfg.Segments.FixedThreshold, 1e-9)
	assert.InDelta(t, 0.5, cfg.Segments.MinPauseDurationSec, 1e-9)

	// Calibrated tracker numbers pass through untouched.
	assert.InDelta(t, voice.DefaultConfig().F0.VoicingThreshold, cfg.F0.VoicingThreshold, 1e-9)

	// Zero values keep the calibrated defaults entirely.
	assert.Equal(t, voice.DefaultConfig(), VoiceConfig{}.AnalyzerConfig(0))
}

func TestTremorAnalyzerConfigBridge(t *testing.T) {
	assert.InDelta(t, 0.9, TremorConfig{HighPassAlpha: 0.9}.AnalyzerConfig().HighPassAlpha, 1e-9)

	// Out-of-range and zero values fall back to the calibrated default.
	def := tremor.DefaultConfig().HighPassAlpha
	assert.InDelta(t, def, TremorConfig{}.AnalyzerConfig().HighPassAlpha, 1e-9)
	assert.InDelta(t, def, TremorConfig{HighPassAlpha: 1.5}.AnalyzerConfig().HighPassAlpha, 1e-9)
}

func TestGetDefaultOutputConfigForFormat(t *testing.T) {
	jsonCfg := GetDefaultOutputConfigForFormat("json")
	assert.False(t, jsonCfg.Colors)
	assert.Equal(t, 6, jsonCfg.Precision)

	csvCfg := GetDefaultOutputConfigForFormat("csv")
	assert.False(t, csvCfg.IncludeMetadata)
	assert.False(t, csvCfg.Timestamps)

	tableCfg := GetDefaultOutputConfigForFormat("table")
	assert.True(t, tableCfg.Colors)
	assert.Equal(t, 2, tableCfg.Precision)
}
