package ports

import (
	"context"
	"io"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

// EmotionRequest is the analyze-emotion body
type EmotionRequest struct {
	Text             string          `json:"text"`
	Speaker          string          `json:"speaker"`
	RecentTranscript []entities.Line `json:"recent_transcript"`
}

// ActionItemsRequest is the generate-action-items body
type ActionItemsRequest struct {
	Transcript          []entities.Line              `json:"transcript"`
	ExistingActionItems []entities.BackendActionItem `json:"existing_action_items"`
}

// PersonalizedRequest carries both personalized-context body shapes
type PersonalizedRequest struct {
	UserID           string                `json:"user_id,omitempty"`
	UserProfile      *entities.UserProfile `json:"user_profile,omitempty"`
	Text             string                `json:"text,omitempty"`
	LatestText       string                `json:"latest_text,omitempty"`
	RecentTranscript []entities.Line       `json:"recent_transcript"`
}

// QuestionRequest is the qa/ask body
type QuestionRequest struct {
	Question   string          `json:"question"`
	Transcript []entities.Line `json:"transcript"`
}

// Upload is a media file handed to the backend
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Backend is the remote meeting backend. Implementations perform a single
// attempt per call; retrying is the caller's decision.
type Backend interface {
	AnalyzeEmotion(ctx context.Context, req EmotionRequest) (*entities.EmotionAnalysis, error)
	GenerateActionItems(ctx context.Context, req ActionItemsRequest) ([]entities.BackendActionItem, error)
	CreateJiraTicket(ctx context.Context, item entities.BackendActionItem) (*entities.JiraTicket, error)
	PersonalizedContext(ctx context.Context, req PersonalizedRequest) (*entities.PersonalizedContext, error)
	AskQuestion(ctx context.Context, req QuestionRequest) (*entities.Answer, error)

	ProcessMedia(ctx context.Context, upload Upload) (*entities.MediaResult, error)
	ProcessMediaStream(ctx context.Context, upload Upload) (io.ReadCloser, error)

	EndMeeting(ctx context.Context, sessionID string) (*entities.MeetingSummary, error)
	CreateJiraTasks(ctx context.Context, sessionID string) (*entities.JiraTasksResult, error)
	PostSummary(ctx context.Context, sessionID, platform string) (*entities.PostSummaryResult, error)
	Health(ctx context.Context) (*entities.BackendHealth, error)
}
