package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/parkinsense/symptom-engine/pkg/tremor"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`
	ConfigDir    string `mapstructure:"config_dir"`
	DataDir      string `mapstructure:"data_dir"`

	// Audio ingestion configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Voice test configuration
	Voice VoiceConfig `mapstructure:"voice"`

	// Tremor test configuration
	Tremor TremorConfig `mapstructure:"tremor"`

	// HTTP service configuration
	Server ServerConfig `mapstructure:"server"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// AudioConfig contains audio ingestion settings
type AudioConfig struct {
	SampleRate     int     `mapstructure:"sample_rate"`
	Channels       int     `mapstructure:"channels"`
	MinDurationSec float64 `mapstructure:"min_duration_sec"`
	MaxUploadBytes int64   `mapstructure:"max_upload_bytes"`
}

// VoiceConfig contains voice test analysis settings. Zero values defer to
// the calibrated analyzer defaults; the heuristic numbers themselves live
// in pkg/voice, not here.
type VoiceConfig struct {
	// SilenceThreshold overrides the adaptive silence gate when > 0.
	SilenceThreshold    float64       `mapstructure:"silence_threshold"`
	MinPauseDurationSec float64       `mapstructure:"min_pause_duration_sec"`
	Scoring             ScoringConfig `mapstructure:"scoring"`
}

// ScoringConfig selects the score composer
type ScoringConfig struct {
	Scheme string `mapstructure:"scheme"`
}

// TremorConfig contains tremor test analysis settings
type TremorConfig struct {
	HighPassAlpha float64 `mapstructure:"high_pass_alpha"`
}

// ServerConfig contains HTTP service settings
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision       int  `mapstructure:"precision"`
	IncludeMetadata bool `mapstructure:"include_metadata"`
	Timestamps      bool `mapstructure:"timestamps"`
	Colors          bool `mapstructure:"colors"`
}

// AnalyzerConfig maps the app-level voice settings onto the analyzer's
// calibrated defaults. sampleRate comes from the decoded capture and may
// be 0 when unknown.
func (c VoiceConfig) AnalyzerConfig(sampleRate int) voice.Config {
	cfg := voice.DefaultConfig()
	if sampleRate > 0 {
		cfg.SampleRate = sampleRate
	}
	if c.Scoring.Scheme != "" {
		cfg.Scheme = c.Scoring.Scheme
	}
	if c.SilenceThreshold > 0 {
		cfg.Segments.FixedThreshold = c.SilenceThreshold
	}
	if c.MinPauseDurationSec > 0 {
		cfg.Segments.MinPauseDurationSec = c.MinPauseDurationSec
	}
	return cfg
}

// AnalyzerConfig maps the app-level tremor settings onto the analyzer's
// calibrated defaults.
func (c TremorConfig) AnalyzerConfig() tremor.Config {
	cfg := tremor.DefaultConfig()
	if c.HighPassAlpha > 0 && c.HighPassAlpha < 1 {
		cfg.HighPassAlpha = c.HighPassAlpha
	}
	return cfg
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom fills defaults on v and decodes it into a Config
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive")
	}

	if config.Audio.Channels <= 0 {
		return fmt.Errorf("audio channels must be positive")
	}

	if config.Audio.MinDurationSec < 0 {
		return fmt.Errorf("audio minimum duration cannot be negative")
	}

	switch config.Voice.Scoring.Scheme {
	case voice.SchemeSeverity, voice.SchemeAcoustic:
	default:
		return fmt.Errorf("unknown voice scoring scheme %q", config.Voice.Scoring.Scheme)
	}

	if config.Voice.SilenceThreshold < 0 {
		return fmt.Errorf("voice silence threshold cannot be negative")
	}

	if config.Voice.MinPauseDurationSec <= 0 {
		return fmt.Errorf("voice minimum pause duration must be positive")
	}

	if config.Tremor.HighPassAlpha <= 0 || config.Tremor.HighPassAlpha >= 1 {
		return fmt.Errorf("tremor high-pass alpha must be in (0, 1)")
	}

	if config.Server.Addr == "" {
		return fmt.Errorf("server address cannot be empty")
	}

	if config.Output.Precision < 0 {
		return fmt.Errorf("output precision cannot be negative")
	}

	return nil
}
