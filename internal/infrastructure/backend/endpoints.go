package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
)

var _ ports.Backend = (*Client)(nil)

// AnalyzeEmotion scores one utterance
func (c *Client) AnalyzeEmotion(ctx context.Context, req ports.EmotionRequest) (*entities.EmotionAnalysis, error) {
	var out entities.EmotionAnalysis
	if err := c.postJSON(ctx, "analyze_emotion", "/api/analyze-emotion", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateActionItems returns the full replacement list of action items
func (c *Client) GenerateActionItems(ctx context.Context, req ports.ActionItemsRequest) ([]entities.BackendActionItem, error) {
	if req.ExistingActionItems == nil {
		req.ExistingActionItems = []entities.BackendActionItem{}
	}
	var out struct {
		ActionItems []entities.BackendActionItem `json:"action_items"`
		Error       string                       `json:"error,omitempty"`
	}
	if err := c.postJSON(ctx, "generate_action_items", "/api/generate-action-items", req, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, fmt.Errorf("generate action items: %s", out.Error)
	}
	return out.ActionItems, nil
}

// CreateJiraTicket creates one ticket. A response with success=false is
// returned as-is; callers decide what it means.
func (c *Client) CreateJiraTicket(ctx context.Context, item entities.BackendActionItem) (*entities.JiraTicket, error) {
	body := struct {
		ActionItem entities.BackendActionItem `json:"action_item"`
	}{ActionItem: item}

	var out entities.JiraTicket
	if err := c.postJSON(ctx, "create_jira_ticket", "/api/create-jira-ticket", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonalizedContext asks the personalized-context endpoint and falls back
// to the personalized assistant when the former is not deployed.
func (c *Client) PersonalizedContext(ctx context.Context, req ports.PersonalizedRequest) (*entities.PersonalizedContext, error) {
	var out entities.PersonalizedContext

	primary := ports.PersonalizedRequest{
		UserID:           req.UserID,
		Text:             req.Text,
		RecentTranscript: req.RecentTranscript,
	}
	err := c.postJSON(ctx, "personalized_context", "/api/personalized-context", primary, &out)
	if err == nil {
		return &out, nil
	}

	var se *StatusError
	if !errors.As(err, &se) || (se.Code != http.StatusNotFound && se.Code != http.StatusMethodNotAllowed) {
		return nil, err
	}

	fallback := ports.PersonalizedRequest{
		UserProfile:      req.UserProfile,
		LatestText:       req.Text,
		RecentTranscript: req.RecentTranscript,
	}
	if fallback.UserProfile == nil {
		fallback.UserProfile = &entities.UserProfile{UserID: req.UserID}
	}
	out = entities.PersonalizedContext{}
	if err := c.postJSON(ctx, "personalized_assistant", "/api/personalized-assistant/analyze", fallback, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AskQuestion answers a question against the transcript
func (c *Client) AskQuestion(ctx context.Context, req ports.QuestionRequest) (*entities.Answer, error) {
	var out entities.Answer
	if err := c.postJSON(ctx, "qa_ask", "/api/qa/ask", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EndMeeting closes the backend meeting session and returns its summary
func (c *Client) EndMeeting(ctx context.Context, sessionID string) (*entities.MeetingSummary, error) {
	var out entities.MeetingSummary
	path := fmt.Sprintf("/api/meeting/%s/end", url.PathEscape(sessionID))
	if err := c.postJSON(ctx, "end_meeting", path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateJiraTasks creates tickets for every action item the backend holds
func (c *Client) CreateJiraTasks(ctx context.Context, sessionID string) (*entities.JiraTasksResult, error) {
	var out entities.JiraTasksResult
	path := fmt.Sprintf("/api/meeting/%s/create-jira-tasks", url.PathEscape(sessionID))
	if err := c.postJSON(ctx, "create_jira_tasks", path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostSummary posts the meeting summary to teams or slack
func (c *Client) PostSummary(ctx context.Context, sessionID, platform string) (*entities.PostSummaryResult, error) {
	var out entities.PostSummaryResult
	path := fmt.Sprintf("/api/meeting/%s/post-summary?platform=%s", url.PathEscape(sessionID), url.QueryEscape(platform))
	if err := c.postJSON(ctx, "post_summary", path, struct{}{}, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return &out, fmt.Errorf("post summary: %s", out.Error)
	}
	return &out, nil
}

// Health reports which integrations the backend has configured
func (c *Client) Health(ctx context.Context) (*entities.BackendHealth, error) {
	var out entities.BackendHealth
	if err := c.getJSON(ctx, "health", "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
