package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/parkinsense/symptom-engine/configs"
	"github.com/parkinsense/symptom-engine/internal/scoring"
	"github.com/parkinsense/symptom-engine/pkg/logging"
	"github.com/parkinsense/symptom-engine/pkg/session"
)

// Version is stamped at build time via -ldflags.
var Version = "1.0.0"

// Server is the HTTP/WebSocket shell around the scoring orchestrator.
// It decodes requests, drives sessions, and renders results; all
// analysis lives below internal/scoring.
type Server struct {
	config       configs.ServerConfig
	maxUpload    int64
	orchestrator *scoring.Orchestrator
	sessions     *session.Manager
	metrics      *Metrics
	logger       logging.Logger
	httpServer   *http.Server
	mux          *http.ServeMux
	startTime    time.Time
}

// NewServer builds the service from a validated config.
func NewServer(config *configs.Config, logger logging.Logger) (*Server, error) {
	if config == nil {
		config = configs.GetDefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	orchestrator, err := scoring.NewOrchestrator(config, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       config.Server,
		maxUpload:    config.Audio.MaxUploadBytes,
		orchestrator: orchestrator,
		sessions:     session.NewManager(),
		metrics:      NewMetrics(),
		logger:       logger.WithFields(logging.Fields{"component": "server"}),
		mux:          http.NewServeMux(),
		startTime:    time.Now(),
	}

	s.mux.HandleFunc("POST /v1/voice/analyze", s.instrument("/v1/voice/analyze", s.handleVoiceAnalyze))
	s.mux.HandleFunc("POST /v1/tremor/analyze", s.instrument("/v1/tremor/analyze", s.handleTremorAnalyze))
	s.mux.HandleFunc("GET /healthz", s.instrument("/healthz", s.handleHealth))
	s.mux.Handle("GET /metrics", s.metrics.Handler())
	// The stream route is not instrumented: the status recorder would
	// hide the Hijacker the WebSocket upgrade needs.
	s.mux.HandleFunc("GET /v1/sessions/stream", s.handleSessionStream)

	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.mux,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	return s, nil
}

// Handler returns the route table, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", logging.Fields{
		"addr":    s.config.Addr,
		"version": Version,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.logger.Error(err, "HTTP server failed")
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// statusRecorder captures the response code for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		s.metrics.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
