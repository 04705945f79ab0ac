package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parkinsense/symptom-engine/configs"
	"github.com/parkinsense/symptom-engine/pkg/logging"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ConfigFile   string
	OutputFile   string
	OutputFormat string
	Transcript   string
	WordCount    int
	Scheme       string
	Addr         string
	Verbose      bool
	Quiet        bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// App carries the merged configuration and logger shared by all commands
type App struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger
}

// NewApp creates an application from the parsed CLI context
func NewApp(ctx *Context) (*App, error) {
	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	logger := setupLogging(ctx, config)
	ctx.Logger = logger

	logger.Debug("Application initialized", logging.Fields{
		"config_file":   ctx.ConfigFile,
		"output_format": config.OutputFormat,
		"voice_scheme":  config.Voice.Scoring.Scheme,
	})

	return &App{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// Config returns the merged effective configuration
func (app *App) Config() *configs.Config {
	return app.config
}

// Logger returns the application logger
func (app *App) Logger() logging.Logger {
	return app.logger
}

// setupLogging configures the process logger from the merged config
func setupLogging(ctx *Context, config *configs.Config) logging.Logger {
	level := config.LogLevel
	if ctx.Verbose || config.Verbose {
		level = "debug"
	}
	if ctx.Quiet {
		level = "error"
	}

	if err := logging.Configure(logging.Options{Level: level}); err != nil {
		logging.Error(err, "Invalid log level, keeping default")
	}

	return logging.WithFields(logging.Fields{"component": "app"})
}

// Output renders data in the configured format and writes it to the
// output file or stdout.
func (app *App) Output(data any) error {
	formatter := NewFormatter(app.config.OutputFormat)

	formatted, err := formatter.Format(data, true)
	if err != nil {
		// JSON cannot encode NaN or infinite values; scrub and retry.
		if strings.Contains(err.Error(), "unsupported value") {
			formatted, err = formatter.Format(sanitizeForJSON(data), true)
		}
		if err != nil {
			return fmt.Errorf("failed to format output data: %w", err)
		}
	}

	if app.ctx.OutputFile != "" {
		return app.writeToFile(formatted)
	}

	_, err = os.Stdout.Write(formatted)
	return err
}

// writeToFile writes data to the specified output file
func (app *App) writeToFile(data []byte) error {
	dir := filepath.Dir(app.ctx.OutputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(app.ctx.OutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Debug("Results written to file", logging.Fields{
		"output_file": app.ctx.OutputFile,
		"size_bytes":  len(data),
	})

	return nil
}
