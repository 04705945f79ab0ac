package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/parkinsense/symptom-engine/pkg/audio"
	"github.com/parkinsense/symptom-engine/pkg/logging"
	"github.com/parkinsense/symptom-engine/pkg/tremor"
	"github.com/parkinsense/symptom-engine/pkg/voice"
)

// Kind selects which symptom test a session captures.
type Kind string

const (
	KindVoice  Kind = "voice"
	KindTremor Kind = "tremor"
)

// Valid reports whether k names a known test kind.
func (k Kind) Valid() bool {
	return k == KindVoice || k == KindTremor
}

// Session buffers one symptom test capture. Push methods are safe for
// concurrent use; Seal freezes the buffers, after which pushes fail with
// a typed *Error and analysis may read the snapshot without locks.
type Session struct {
	id        string
	kind      Kind
	createdAt time.Time
	logger    logging.Logger

	mu         sync.Mutex
	sealed     bool
	timeline   []voice.AmplitudeSample
	motion     []tremor.Sample
	waveform   []float64
	sampleRate int
	transcript string
	wordCount  int
}

// Snapshot is the immutable view of a sealed session. It shares the
// session's buffers; the session never mutates them after Seal.
type Snapshot struct {
	ID         string
	Kind       Kind
	CreatedAt  time.Time
	Timeline   []voice.AmplitudeSample
	Motion     []tremor.Sample
	Waveform   []float64
	SampleRate int
	Transcript string
	WordCount  int
}

// VoiceInput converts the snapshot to the voice analyzer's input shape.
func (s Snapshot) VoiceInput() voice.Input {
	return voice.Input{
		Timeline:   s.Timeline,
		Waveform:   s.Waveform,
		SampleRate: s.SampleRate,
		Transcript: s.Transcript,
		WordCount:  s.WordCount,
	}
}

// New creates an open session for the given test kind. sampleRate
// describes pushed PCM blocks and may be 0 for timeline-only captures.
func New(kind Kind, sampleRate int) *Session {
	id := uuid.NewString()
	return &Session{
		id:         id,
		kind:       kind,
		createdAt:  time.Now(),
		sampleRate: sampleRate,
		logger: logging.WithFields(logging.Fields{
			"component":  "session",
			"session_id": id,
			"kind":       string(kind),
		}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Kind returns the session's test kind.
func (s *Session) Kind() Kind { return s.kind }

// CreatedAt returns when the session was opened.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Sealed reports whether the session has been sealed.
func (s *Session) Sealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sealed
}

// PushAmplitude appends one timeline reading. Readings must arrive in
// non-decreasing elapsed-time order. For tremor sessions the amplitude is
// the accelerometer magnitude.
func (s *Session) PushAmplitude(amplitude, elapsedMs float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		return s.sealedError()
	}

	switch s.kind {
	case KindVoice:
		if n := len(s.timeline); n > 0 && elapsedMs < s.timeline[n-1].ElapsedMs {
			return s.backwardsTimeError(elapsedMs, s.timeline[n-1].ElapsedMs)
		}
		s.timeline = append(s.timeline, voice.AmplitudeSample{Amplitude: amplitude, ElapsedMs: elapsedMs})
	case KindTremor:
		if n := len(s.motion); n > 0 && elapsedMs < s.motion[n-1].ElapsedMs {
			return s.backwardsTimeError(elapsedMs, s.motion[n-1].ElapsedMs)
		}
		s.motion = append(s.motion, tremor.Sample{Magnitude: amplitude, ElapsedMs: elapsedMs})
	default:
		return NewError(s.id, ErrCodeKindMismatch, fmt.Sprintf("unknown session kind %q", s.kind), nil)
	}
	return nil
}

// PushPCMBlock appends decoded mono samples to the session's waveform.
func (s *Session) PushPCMBlock(block []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		return s.sealedError()
	}
	if s.kind != KindVoice {
		return NewError(s.id, ErrCodeKindMismatch, "only voice sessions accept PCM audio", nil)
	}

	s.waveform = append(s.waveform, block...)
	return nil
}

// PushPCM16 decodes a little-endian 16-bit PCM byte block and appends it
// to the session's waveform.
func (s *Session) PushPCM16(block []byte) error {
	samples, err := audio.PCM16BytesToFloat64(block)
	if err != nil {
		return NewError(s.id, ErrCodeDecoding, "invalid PCM block", err)
	}
	return s.PushPCMBlock(samples)
}

// PushTranscript appends a recognized transcript fragment. Word counts
// accumulate when the recognizer provides them; a zero count defers to
// transcript word counting at analysis time.
func (s *Session) PushTranscript(text string, wordCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		return s.sealedError()
	}
	if s.kind != KindVoice {
		return NewError(s.id, ErrCodeKindMismatch, "only voice sessions accept transcripts", nil)
	}

	if s.transcript != "" && text != "" {
		s.transcript += " "
	}
	s.transcript += text
	if wordCount > 0 {
		s.wordCount += wordCount
	}
	return nil
}

// Seal freezes the session and returns its snapshot. Sealing is
// idempotent; every call returns the same buffers.
func (s *Session) Seal() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sealed {
		s.sealed = true
		s.logger.Debug("Session sealed", logging.Fields{
			"timeline_samples": len(s.timeline),
			"motion_samples":   len(s.motion),
			"waveform_samples": len(s.waveform),
			"word_count":       s.wordCount,
		})
	}

	return Snapshot{
		ID:         s.id,
		Kind:       s.kind,
		CreatedAt:  s.createdAt,
		Timeline:   s.timeline,
		Motion:     s.motion,
		Waveform:   s.waveform,
		SampleRate: s.sampleRate,
		Transcript: s.transcript,
		WordCount:  s.wordCount,
	}
}

func (s *Session) sealedError() *Error {
	return NewError(s.id, ErrCodeSealed, "session is sealed", nil)
}

func (s *Session) backwardsTimeError(elapsedMs, lastMs float64) *Error {
	return NewError(s.id, ErrCodeInvalidInput,
		fmt.Sprintf("elapsed_ms went backwards: %.1f after %.1f", elapsedMs, lastMs), nil)
}
