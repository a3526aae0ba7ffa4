package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is either idle or recording
type SessionState string

const (
	SessionIdle      SessionState = "idle"
	SessionRecording SessionState = "recording"
)

// UploadMode selects how an uploaded file is processed
type UploadMode string

const (
	// UploadStream consumes the incremental processing stream.
	UploadStream UploadMode = "stream"
	// UploadBatch waits for the complete result.
	UploadBatch UploadMode = "batch"
)

// Valid reports whether m is a known mode.
func (m UploadMode) Valid() bool {
	return m == UploadStream || m == UploadBatch
}

// Session is an immutable snapshot of the meeting session owned by the controller
type Session struct {
	ID                  string            `json:"session_id"`
	Number              int               `json:"number"`
	State               SessionState      `json:"state"`
	DurationSeconds     int               `json:"duration_seconds"`
	IsProcessing        bool              `json:"is_processing"`
	Transcript          []TranscriptEntry `json:"transcript"`
	ActionItems         []ActionItem      `json:"action_items"`
	Insights            []string          `json:"insights"`
	Questions           []Question        `json:"questions"`
	PersonalizedMessage string            `json:"personalized_message,omitempty"`
	Error               string            `json:"error,omitempty"`
	Notice              string            `json:"notice,omitempty"`
	StartedAt           *time.Time        `json:"started_at,omitempty"`
}

// IsRecording reports whether the snapshot was taken while recording.
func (s Session) IsRecording() bool {
	return s.State == SessionRecording
}

// CommittedTranscript returns the finalized entries only.
func (s Session) CommittedTranscript() []TranscriptEntry {
	out := make([]TranscriptEntry, 0, len(s.Transcript))
	for _, e := range s.Transcript {
		if !e.IsLive() {
			out = append(out, e)
		}
	}
	return out
}

// FindActionItem looks an item up by its stable ID.
func (s Session) FindActionItem(id string) (ActionItem, bool) {
	for _, item := range s.ActionItems {
		if item.ID == id {
			return item, true
		}
	}
	return ActionItem{}, false
}

// NewSessionID returns an identifier for a new session.
func NewSessionID() string {
	return "session_" + uuid.NewString()
}

// Question is one entry of the Q&A log
type Question struct {
	ID       string    `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer,omitempty"`
	AskedAt  time.Time `json:"asked_at"`
}
