package session

// SessionView is the display-ready session
type SessionView struct {
	SessionID           string           `json:"session_id"`
	Number              int              `json:"number"`
	State               string           `json:"state"`
	Duration            string           `json:"duration"`
	DurationSeconds     int              `json:"duration_seconds"`
	IsRecording         bool             `json:"is_recording"`
	IsProcessing        bool             `json:"is_processing"`
	Transcript          []TranscriptLine `json:"transcript"`
	ActionItems         []ActionItemView `json:"action_items"`
	Insights            []InsightView    `json:"insights"`
	Questions           []QuestionView   `json:"questions"`
	PersonalizedMessage string           `json:"personalized_message,omitempty"`
	Error               string           `json:"error,omitempty"`
	Notice              string           `json:"notice,omitempty"`
}

// TranscriptLine is one rendered transcript entry
type TranscriptLine struct {
	ID       string       `json:"id"`
	Speaker  string       `json:"speaker"`
	Initials string       `json:"initials"`
	Color    string       `json:"color"`
	Text     string       `json:"text"`
	Time     string       `json:"time"`
	Live     bool         `json:"live"`
	Emotion  *EmotionView `json:"emotion,omitempty"`
}

// EmotionView is the emotion tag under a finalized line
type EmotionView struct {
	Sentiment   string   `json:"sentiment"`
	Emoji       string   `json:"emoji"`
	Happiness   float64  `json:"happiness_level"`
	Confidence  float64  `json:"confidence"`
	KeyEmotions []string `json:"key_emotions,omitempty"`
	MoodSummary string   `json:"mood_summary,omitempty"`
}

// ActionItemView is an action item with its display string
type ActionItemView struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Assignee  *string `json:"assignee,omitempty"`
	Priority  string  `json:"priority"`
	Completed bool    `json:"completed"`
	TicketKey string  `json:"ticket_key,omitempty"`
	Display   string  `json:"display"`
}

// InsightView is an insight with its category
type InsightView struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// QuestionView is one rendered Q&A entry
type QuestionView struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	Time     string `json:"time"`
}

// UploadResponse reports one processed upload
type UploadResponse struct {
	SessionID  string `json:"session_id"`
	Mode       string `json:"mode"`
	ArchiveKey string `json:"archive_key,omitempty"`
	Events     int    `json:"events"`
	Skipped    int    `json:"skipped"`
}
