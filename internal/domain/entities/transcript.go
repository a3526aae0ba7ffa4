package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// LivePrefix marks the in-progress utterance at the tail of a transcript.
	LivePrefix = "[LIVE] "
	liveMarker = "[LIVE]"
	liveSuffix = "..."

	// DefaultSpeaker is used when a backend line carries no speaker.
	DefaultSpeaker = "Speaker"
)

// Emotion is the per-utterance sentiment returned by the backend
type Emotion struct {
	Sentiment      string   `json:"sentiment"`
	Confidence     float64  `json:"confidence"`
	HappinessLevel float64  `json:"happiness_level"`
	KeyEmotions    []string `json:"key_emotions"`
	MoodSummary    string   `json:"mood_summary"`
}

// TranscriptEntry is one line of the meeting transcript.
// Once finalized, speaker, text and timestamp never change.
type TranscriptEntry struct {
	ID        string   `json:"id"`
	Speaker   string   `json:"speaker"`
	Text      string   `json:"text"`
	Timestamp string   `json:"timestamp,omitempty"`
	Emotion   *Emotion `json:"emotions,omitempty"`
	// Live marks the provisional tail. The text prefix is decoration only.
	Live bool `json:"live,omitempty"`
}

// NewTranscriptEntry builds a finalized entry with a fresh ID. An empty
// timestamp is stamped with now.
func NewTranscriptEntry(speaker, text, timestamp string) TranscriptEntry {
	if strings.TrimSpace(speaker) == "" {
		speaker = DefaultSpeaker
	}
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return TranscriptEntry{
		ID:        uuid.NewString(),
		Speaker:   speaker,
		Text:      text,
		Timestamp: timestamp,
	}
}

// LiveText renders interim text the way the live tail shows it.
func LiveText(interim string) string {
	return LivePrefix + interim + liveSuffix
}

// NewLiveEntry builds the provisional entry shown while speech is interim.
func NewLiveEntry(speaker, interim string) TranscriptEntry {
	return TranscriptEntry{Speaker: speaker, Text: LiveText(interim), Live: true}
}

// IsLive reports whether the entry is the provisional live utterance.
func (e TranscriptEntry) IsLive() bool {
	return e.Live
}

// InterimText strips the live decoration. Finalized entries are returned as-is.
func (e TranscriptEntry) InterimText() string {
	if !e.IsLive() {
		return e.Text
	}
	text := strings.TrimPrefix(e.Text, liveMarker)
	text = strings.TrimPrefix(text, " ")
	return strings.TrimSuffix(text, liveSuffix)
}

// Line is the wire shape of a transcript line sent to the backend
type Line struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ToLines converts entries to backend context lines. Entries without a
// timestamp are stamped with now.
func ToLines(entries []TranscriptEntry) []Line {
	now := time.Now().UTC().Format(time.RFC3339)
	lines := make([]Line, 0, len(entries))
	for _, e := range entries {
		ts := e.Timestamp
		if ts == "" {
			ts = now
		}
		lines = append(lines, Line{Speaker: e.Speaker, Text: e.Text, Timestamp: ts})
	}
	return lines
}
