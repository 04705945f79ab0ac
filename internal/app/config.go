package app

import (
	"fmt"

	"github.com/parkinsense/symptom-engine/configs"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

// loadAndMergeConfig loads the base configuration and merges CLI flag
// overrides on top of it
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	mergeContextOverrides(config, ctx)

	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// mergeContextOverrides applies explicit CLI flags over loaded config
// values. Empty flags leave the config untouched.
func mergeContextOverrides(config *configs.Config, ctx *Context) {
	if ctx.OutputFormat != "" {
		config.OutputFormat = ctx.OutputFormat
	}
	if ctx.Scheme != "" {
		config.Voice.Scoring.Scheme = ctx.Scheme
	}
	if ctx.Addr != "" {
		config.Server.Addr = ctx.Addr
	}
	if ctx.Verbose {
		config.Verbose = true
	}
}

// VoiceAnalyzerConfig resolves the voice analyzer configuration for a
// capture with the given sample rate.
func (app *App) VoiceAnalyzerConfig(sampleRate int) voice.Config {
	return app.config.Voice.AnalyzerConfig(sampleRate)
}
