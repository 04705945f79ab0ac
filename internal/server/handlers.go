package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/parkinsense/symptom-engine/pkg/audio"
	"github.com/parkinsense/symptom-engine/pkg/logging"
	"github.com/parkinsense/symptom-engine/pkg/session"
	"github.com/parkinsense/symptom-engine/pkg/tremor"
)

type voiceAnalyzeRequest struct {
	AudioBase64 string `json:"audio_base64"`
	Transcript  string `json:"transcript"`
	WordCount   int    `json:"word_count"`
}

type tremorAnalyzeRequest struct {
	Samples []tremor.Sample `json:"samples"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleVoiceAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var req voiceAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "voice", session.NewError("", session.ErrCodeInvalidInput, "malformed request body", err))
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		s.writeError(w, "voice", session.NewError("", session.ErrCodeDecoding, "audio_base64 is not valid base64", err))
		return
	}
	if err := audio.ValidateWAVHeader(raw); err != nil {
		s.writeError(w, "voice", session.NewError("", session.ErrCodeDecoding, "audio is not a WAV container", err))
		return
	}

	start := time.Now()
	result, err := s.orchestrator.AnalyzeVoiceWAV(raw, req.Transcript, req.WordCount)
	if err != nil {
		s.writeError(w, "voice", err)
		return
	}

	s.metrics.AnalysisDuration.WithLabelValues("voice").Observe(time.Since(start).Seconds())
	s.metrics.ScoresObserved.WithLabelValues("voice").Observe(result.Score)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTremorAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var req tremorAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "tremor", session.NewError("", session.ErrCodeInvalidInput, "malformed request body", err))
		return
	}

	// Sparse or empty captures come back flagged insufficient rather
	// than rejected; only transport problems are errors here.
	start := time.Now()
	result := s.orchestrator.AnalyzeTremorSamples(req.Samples)

	s.metrics.AnalysisDuration.WithLabelValues("tremor").Observe(time.Since(start).Seconds())
	s.metrics.ScoresObserved.WithLabelValues("tremor").Observe(result.Score)
	s.writeJSON(w, http.StatusOK, result)
}

type healthStatus struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Version   string                 `json:"version"`
	Checks    map[string]checkResult `json:"checks"`
	System    systemInfo             `json:"system"`
}

type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type systemInfo struct {
	Goroutines     int `json:"goroutines"`
	ActiveSessions int `json:"active_sessions"`
}

// healthProbe is a canned motion capture long enough to clear the
// analyzer's minimum; scoring it end to end proves the pipeline.
var healthProbe = func() []tremor.Sample {
	samples := make([]tremor.Sample, 20)
	for i := range samples {
		samples[i] = tremor.Sample{Magnitude: 9.81, ElapsedMs: float64(i) * 10.0}
	}
	return samples
}()

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := healthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Version:   Version,
		Checks:    make(map[string]checkResult),
		System: systemInfo{
			Goroutines:     runtime.NumGoroutine(),
			ActiveSessions: s.sessions.Len(),
		},
	}

	if probe := s.orchestrator.AnalyzeTremorSamples(healthProbe); probe != nil && !probe.InsufficientData {
		health.Checks["scoring"] = checkResult{Status: "healthy"}
	} else {
		health.Checks["scoring"] = checkResult{Status: "unhealthy", Message: "probe capture did not score"}
		health.Status = "unhealthy"
	}

	health.Checks["sessions"] = checkResult{Status: "healthy"}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, health)
}

// writeError maps typed session errors to client-fault statuses;
// anything untyped is a server fault.
func (s *Server) writeError(w http.ResponseWriter, kind string, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Error: err.Error()}

	var sessionErr *session.Error
	if errors.As(err, &sessionErr) {
		body.Code = sessionErr.Code
		switch sessionErr.Code {
		case session.ErrCodeInvalidInput, session.ErrCodeDecoding, session.ErrCodeKindMismatch:
			status = http.StatusBadRequest
		case session.ErrCodeNotFound:
			status = http.StatusNotFound
		case session.ErrCodeSealed:
			status = http.StatusConflict
		}
	}

	s.metrics.AnalysisErrors.WithLabelValues(kind, body.Code).Inc()
	s.logger.Warn("Request rejected", logging.Fields{
		"kind":   kind,
		"status": status,
		"error":  err.Error(),
	})
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error(err, "Failed to encode response")
	}
}
