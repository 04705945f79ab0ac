package configs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/parkinsense/symptom-engine/pkg/tremor"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

// setDefaults sets default configuration values for all components.
// Analyzer heuristics are pulled from the calibrated domain defaults so
// the numbers stay defined in exactly one place.
func setDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "table")
	}

	// Audio ingestion defaults
	if !v.IsSet("audio.sample_rate") {
		v.Set("audio.sample_rate", voice.DefaultSampleRate)
	}
	if !v.IsSet("audio.channels") {
		v.Set("audio.channels", 1)
	}
	if !v.IsSet("audio.min_duration_sec") {
		v.Set("audio.min_duration_sec", 1.0)
	}
	if !v.IsSet("audio.max_upload_bytes") {
		v.Set("audio.max_upload_bytes", int64(16<<20))
	}

	// Voice analysis defaults
	voiceDefaults := voice.DefaultConfig()
	if !v.IsSet("voice.scoring.scheme") {
		v.Set("voice.scoring.scheme", voiceDefaults.Scheme)
	}
	if !v.IsSet("voice.silence_threshold") {
		v.Set("voice.silence_threshold", voiceDefaults.Segments.FixedThreshold)
	}
	if !v.IsSet("voice.min_pause_duration_sec") {
		v.Set("voice.min_pause_duration_sec", voiceDefaults.Segments.MinPauseDurationSec)
	}

	// Tremor analysis defaults
	tremorDefaults := tremor.DefaultConfig()
	if !v.IsSet("tremor.high_pass_alpha") {
		v.Set("tremor.high_pass_alpha", tremorDefaults.HighPassAlpha)
	}

	// Server defaults
	if !v.IsSet("server.addr") {
		v.Set("server.addr", ":8080")
	}
	if !v.IsSet("server.read_timeout") {
		v.Set("server.read_timeout", 15*time.Second)
	}
	if !v.IsSet("server.write_timeout") {
		v.Set("server.write_timeout", 30*time.Second)
	}
	if !v.IsSet("server.idle_timeout") {
		v.Set("server.idle_timeout", 60*time.Second)
	}
	if !v.IsSet("server.shutdown_timeout") {
		v.Set("server.shutdown_timeout", 10*time.Second)
	}

	// Output defaults
	if !v.IsSet("output.precision") {
		v.Set("output.precision", 3)
	}
	if !v.IsSet("output.include_metadata") {
		v.Set("output.include_metadata", true)
	}
	if !v.IsSet("output.timestamps") {
		v.Set("output.timestamps", true)
	}
	if !v.IsSet("output.colors") {
		v.Set("output.colors", true)
	}
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		// Application settings defaults
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "table",
		ConfigDir:    filepath.Join(home, ".config", "symptom-engine"),
		DataDir:      filepath.Join(home, ".local", "share", "symptom-engine"),

		Audio:  GetDefaultAudioConfig(),
		Voice:  GetDefaultVoiceConfig(),
		Tremor: GetDefaultTremorConfig(),
		Server: GetDefaultServerConfig(),
		Output: GetDefaultOutputConfig(),
	}
}

// GetDefaultAudioConfig returns default audio ingestion settings
func GetDefaultAudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate:     voice.DefaultSampleRate,
		Channels:       1,
		MinDurationSec: 1.0,
		MaxUploadBytes: 16 << 20,
	}
}

// GetDefaultVoiceConfig returns default voice analysis settings mirroring
// the analyzer's calibrated defaults
func GetDefaultVoiceConfig() VoiceConfig {
	d := voice.DefaultConfig()
	return VoiceConfig{
		SilenceThreshold:    d.Segments.FixedThreshold,
		MinPauseDurationSec: d.Segments.MinPauseDurationSec,
		Scoring:             ScoringConfig{Scheme: d.Scheme},
	}
}

// GetDefaultTremorConfig returns default tremor analysis settings
func GetDefaultTremorConfig() TremorConfig {
	return TremorConfig{
		HighPassAlpha: tremor.DefaultConfig().HighPassAlpha,
	}
}

// GetDefaultServerConfig returns default HTTP service settings
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// GetDefaultOutputConfig returns default output formatting settings
func GetDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Precision:       3,
		IncludeMetadata: true,
		Timestamps:      true,
		Colors:          true,
	}
}

// GetDefaultOutputConfigForFormat returns output config optimized for a
// specific format
func GetDefaultOutputConfigForFormat(format string) OutputConfig {
	base := GetDefaultOutputConfig()

	switch format {
	case "json":
		base.Colors = false
		base.Precision = 6
	case "csv":
		base.Colors = false
		base.IncludeMetadata = false
		base.Timestamps = false
	case "table":
		base.Colors = true
		base.Precision = 2
	default:
		// Keep defaults
	}

	return base
}
