package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/parkinsense/symptom-engine/internal/app"
	"github.com/parkinsense/symptom-engine/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP/WebSocket scoring service",
	Long: `Run the scoring service.

Endpoints:
  POST /v1/voice/analyze    score a base64 WAV + transcript payload
  POST /v1/tremor/analyze   score a motion sample payload
  GET  /v1/sessions/stream  WebSocket streaming ingestion
  GET  /healthz             health and subsystem checks
  GET  /metrics             Prometheus metrics

The process shuts down gracefully on SIGINT/SIGTERM.

Examples:
  # Listen on the configured address (default :8080)
  symptom-engine serve

  # Override the listen address
  symptom-engine serve --addr 127.0.0.1:9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Deployments hand the service its environment via .env; a missing
	// file just means the environment is already set.
	_ = godotenv.Load()

	application, err := app.NewApp(&app.Context{
		ConfigFile:   configFile,
		OutputFormat: outputFormat,
		Addr:         serveAddr,
		Verbose:      verbose,
		Quiet:        quiet,
	})
	if err != nil {
		return err
	}

	srv, err := server.NewServer(application.Config(), application.Logger())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
