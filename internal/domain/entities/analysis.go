package entities

// EmotionAnalysis is the analyze-emotion response
type EmotionAnalysis struct {
	Emotion
	RealtimeInsights []string `json:"realtime_insights,omitempty"`
}

// JiraTicket is the create-jira-ticket response
type JiraTicket struct {
	Success      bool   `json:"success"`
	TicketKey    string `json:"ticket_key,omitempty"`
	TicketURL    string `json:"ticket_url,omitempty"`
	Message      string `json:"message,omitempty"`
	DemoMode     bool   `json:"demo_mode,omitempty"`
	Summary      string `json:"summary,omitempty"`
	Description  string `json:"description,omitempty"`
	ProjectKey   string `json:"project_key,omitempty"`
	FallbackUsed bool   `json:"fallback_used,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Answer is the qa/ask response
type Answer struct {
	Answer           string   `json:"answer"`
	Confidence       float64  `json:"confidence,omitempty"`
	Sources          []string `json:"sources,omitempty"`
	RelevantSpeakers []string `json:"relevant_speakers,omitempty"`
}

// PersonalizedContext is either personalized-context response shape
type PersonalizedContext struct {
	DisplayMessage string `json:"display_message,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
}

// Message returns whichever message field is set.
func (p PersonalizedContext) Message() string {
	if p.DisplayMessage != "" {
		return p.DisplayMessage
	}
	return p.Explanation
}

// UserProfile is sent to the personalized assistant
type UserProfile struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
}

// MediaResult is the batch process-media response
type MediaResult struct {
	Transcript  []BackendLine       `json:"transcript"`
	ActionItems []BackendActionItem `json:"action_items"`
	Insights    []string            `json:"insights"`
	Error       string              `json:"error,omitempty"`
}

// MeetingSummary is the meeting end response
type MeetingSummary struct {
	SessionID       string              `json:"session_id"`
	Summary         any                 `json:"summary"`
	TranscriptLines int                 `json:"transcript_lines"`
	ActionItems     []BackendActionItem `json:"action_items"`
}

// JiraTasksResult is the bulk create-jira-tasks response
type JiraTasksResult struct {
	Created int          `json:"created"`
	Tasks   []JiraTicket `json:"tasks"`
}

// PostSummaryResult is the post-summary response
type PostSummaryResult struct {
	Success  bool   `json:"success"`
	Platform string `json:"platform,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BackendHealth is the backend health report
type BackendHealth struct {
	Status           string `json:"status"`
	OpenAIConfigured bool   `json:"openai_configured"`
	JiraConfigured   bool   `json:"jira_configured"`
	TeamsConfigured  bool   `json:"teams_configured"`
	SlackConfigured  bool   `json:"slack_configured"`
}
