package session

// Error represents session lifecycle and ingestion failures. The code is
// machine-readable so transport shells can map failures to status codes
// without matching on message text.
type Error struct {
	SessionID string `json:"session_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Cause     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeSealed       = "SESSION_SEALED"
	ErrCodeNotFound     = "SESSION_NOT_FOUND"
	ErrCodeKindMismatch = "KIND_MISMATCH"
	ErrCodeDecoding     = "DECODING_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// NewError creates a new session error
func NewError(sessionID, code, message string, cause error) *Error {
	return &Error{
		SessionID: sessionID,
		Code:      code,
		Message:   message,
		Cause:     cause,
	}
}
