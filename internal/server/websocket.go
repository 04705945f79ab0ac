package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/parkinsense/symptom-engine/pkg/logging"
	"github.com/parkinsense/symptom-engine/pkg/session"
)

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Capture collaborators are native apps, not browsers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamMessage is one client frame on the session stream.
type streamMessage struct {
	Type       string  `json:"type"`
	Kind       string  `json:"kind,omitempty"`
	Amplitude  float64 `json:"amplitude,omitempty"`
	ElapsedMs  float64 `json:"elapsed_ms,omitempty"`
	PCMBase64  string  `json:"pcm_base64,omitempty"`
	Transcript string  `json:"transcript,omitempty"`
	WordCount  int     `json:"word_count,omitempty"`
}

type streamErrorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

type streamResultFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Result    any    `json:"result"`
}

// handleSessionStream ingests one capture per connection. The session
// kind and sample rate arrive as query parameters; pushes arrive as
// JSON frames; a finish frame seals the session, returns the result,
// and closes the connection.
func (s *Server) handleSessionStream(w http.ResponseWriter, r *http.Request) {
	kind := session.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = session.KindVoice
	}
	sampleRate, _ := strconv.Atoi(r.URL.Query().Get("sample_rate"))

	sess, err := s.sessions.Create(kind, sampleRate)
	if err != nil {
		s.writeError(w, "stream", err)
		return
	}

	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own HTTP error.
		s.sessions.Remove(sess.ID())
		s.logger.Warn("WebSocket upgrade failed", logging.Fields{"error": err.Error()})
		return
	}

	logger := s.logger.WithFields(logging.Fields{
		"session_id": sess.ID(),
		"kind":       string(kind),
	})
	logger.Debug("Session stream opened")
	s.metrics.ActiveSessions.Inc()

	defer func() {
		s.sessions.Remove(sess.ID())
		s.metrics.ActiveSessions.Dec()
		conn.Close()
		logger.Debug("Session stream closed")
	}()

	conn.SetReadLimit(s.maxUpload)

	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Session stream dropped", logging.Fields{"error": err.Error()})
			}
			return
		}

		switch msg.Type {
		case "amplitude":
			s.streamPush(conn, logger, sess.PushAmplitude(msg.Amplitude, msg.ElapsedMs))
		case "pcm":
			raw, err := base64.StdEncoding.DecodeString(msg.PCMBase64)
			if err != nil {
				s.sendStreamError(conn, logger, session.NewError(sess.ID(), session.ErrCodeDecoding,
					"pcm_base64 is not valid base64", err))
				continue
			}
			s.streamPush(conn, logger, sess.PushPCM16(raw))
		case "transcript":
			s.streamPush(conn, logger, sess.PushTranscript(msg.Transcript, msg.WordCount))
		case "finish":
			if msg.Kind != "" && session.Kind(msg.Kind) != sess.Kind() {
				s.sendStreamError(conn, logger, session.NewError(sess.ID(), session.ErrCodeKindMismatch,
					fmt.Sprintf("finish kind %q does not match session kind %q", msg.Kind, sess.Kind()), nil))
				continue
			}
			s.finishStream(conn, logger, sess)
			return
		default:
			s.sendStreamError(conn, logger, session.NewError(sess.ID(), session.ErrCodeInvalidInput,
				fmt.Sprintf("unknown message type %q", msg.Type), nil))
		}
	}
}

// streamPush reports a failed push back to the client; successful
// pushes are silent.
func (s *Server) streamPush(conn *websocket.Conn, logger logging.Logger, err error) {
	if err != nil {
		s.sendStreamError(conn, logger, err)
	}
}

func (s *Server) sendStreamError(conn *websocket.Conn, logger logging.Logger, err error) {
	code := ""
	var sessionErr *session.Error
	if errors.As(err, &sessionErr) {
		code = sessionErr.Code
	}

	logger.Warn("Stream push rejected", logging.Fields{
		"code":  code,
		"error": err.Error(),
	})
	if werr := conn.WriteJSON(streamErrorFrame{Type: "error", Code: code, Error: err.Error()}); werr != nil {
		logger.Error(werr, "Failed to send error frame")
	}
}

func (s *Server) finishStream(conn *websocket.Conn, logger logging.Logger, sess *session.Session) {
	snap := sess.Seal()

	start := time.Now()
	var result any
	var score float64
	switch snap.Kind {
	case session.KindVoice:
		r := s.orchestrator.AnalyzeVoiceSnapshot(snap)
		result, score = r, r.Score
	case session.KindTremor:
		r := s.orchestrator.AnalyzeTremorSnapshot(snap)
		result, score = r, r.Score
	}

	s.metrics.AnalysisDuration.WithLabelValues(string(snap.Kind)).Observe(time.Since(start).Seconds())
	s.metrics.ScoresObserved.WithLabelValues(string(snap.Kind)).Observe(score)
	logger.Info("Session analyzed", logging.Fields{"score": score})

	frame := streamResultFrame{
		Type:      "result",
		SessionID: snap.ID,
		Kind:      string(snap.Kind),
		Result:    result,
	}
	if err := conn.WriteJSON(frame); err != nil {
		logger.Error(err, "Failed to send result frame")
		return
	}

	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "analysis complete"), deadline)
}
