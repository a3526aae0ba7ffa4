package entities

import (
	"encoding/json"
	"strings"
)

// StreamEventType discriminates backend stream frames
type StreamEventType string

const (
	StreamStatus      StreamEventType = "status"
	StreamTranscript  StreamEventType = "transcript"
	StreamActionItems StreamEventType = "action_items"
	StreamComplete    StreamEventType = "complete"
	StreamError       StreamEventType = "error"
)

// StreamEvent is one frame from the processing stream or a backend socket.
// Payloads arrive either in named fields or under "data".
type StreamEvent struct {
	Type        StreamEventType     `json:"type"`
	Message     string              `json:"message,omitempty"`
	Error       string              `json:"error,omitempty"`
	Line        *BackendLine        `json:"line,omitempty"`
	ActionItems []BackendActionItem `json:"action_items,omitempty"`
	Insights    []string            `json:"insights,omitempty"`
	Data        json.RawMessage     `json:"data,omitempty"`
}

// BackendLine is a transcript line as the backend sends it
type BackendLine struct {
	Speaker   string   `json:"speaker"`
	Text      string   `json:"text"`
	Content   string   `json:"content,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	IsFinal   *bool    `json:"is_final,omitempty"`
	Emotions  *Emotion `json:"emotions,omitempty"`
}

// Final reports whether the line is finalized. Lines without the flag are.
func (l BackendLine) Final() bool {
	return l.IsFinal == nil || *l.IsFinal
}

// Body returns the line text, falling back to content.
func (l BackendLine) Body() string {
	if l.Text != "" {
		return l.Text
	}
	return l.Content
}

// ToEntry builds a finalized transcript entry from the line.
func (l BackendLine) ToEntry() TranscriptEntry {
	entry := NewTranscriptEntry(l.Speaker, l.Body(), l.Timestamp)
	entry.Emotion = l.Emotions
	return entry
}

// TranscriptLine returns the line carried by a transcript frame.
func (e StreamEvent) TranscriptLine() (BackendLine, bool) {
	if e.Line != nil {
		return *e.Line, e.Line.Body() != ""
	}
	if len(e.Data) == 0 {
		return BackendLine{}, false
	}
	var line BackendLine
	if err := json.Unmarshal(e.Data, &line); err != nil {
		return BackendLine{}, false
	}
	return line, line.Body() != ""
}

// Items returns the action items carried by an action_items frame.
func (e StreamEvent) Items() []BackendActionItem {
	if len(e.ActionItems) > 0 || len(e.Data) == 0 {
		return e.ActionItems
	}
	var items []BackendActionItem
	if err := json.Unmarshal(e.Data, &items); err == nil {
		return items
	}
	var wrapped struct {
		ActionItems []BackendActionItem `json:"action_items"`
	}
	if err := json.Unmarshal(e.Data, &wrapped); err == nil {
		return wrapped.ActionItems
	}
	return nil
}

// Text returns the human-readable message of a status, complete or error frame.
func (e StreamEvent) Text() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Error)
}
