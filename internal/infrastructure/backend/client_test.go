package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewClient(&config.BackendConfig{BaseURL: ts.URL + "/", APIKey: "k", Timeout: 5 * time.Second}, nil)
}

func TestAnalyzeEmotion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analyze-emotion", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-API-Key"))

		var req ports.EmotionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Text)
		assert.Len(t, req.RecentTranscript, 1)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sentiment":         "positive",
			"confidence":        0.9,
			"happiness_level":   0.8,
			"key_emotions":      []string{"joy"},
			"mood_summary":      "upbeat",
			"realtime_insights": []string{"You should summarize"},
		})
	})

	got, err := c.AnalyzeEmotion(context.Background(), ports.EmotionRequest{
		Text:             "hello",
		Speaker:          "You",
		RecentTranscript: []entities.Line{{Speaker: "A", Text: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "positive", got.Sentiment)
	assert.Equal(t, []string{"joy"}, got.KeyEmotions)
	assert.Equal(t, []string{"You should summarize"}, got.RealtimeInsights)
}

func TestGenerateActionItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "[]", string(body["existing_action_items"]))
		w.Write([]byte(`{"action_items":[{"text":"Email client","assignee":"Alice","priority":"high"}]}`))
	})

	items, err := c.GenerateActionItems(context.Background(), ports.ActionItemsRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alice", *items[0].Assignee)
}

func TestGenerateActionItems_BodyError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"action_items":[],"error":"model overloaded"}`))
	})

	_, err := c.GenerateActionItems(context.Background(), ports.ActionItemsRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.AskQuestion(context.Background(), ports.QuestionRequest{Question: "q"})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Contains(t, err.Error(), "status 502")
}

func TestCreateJiraTicket(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ActionItem entities.BackendActionItem `json:"action_item"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 0.9, body.ActionItem.Confidence)
		w.Write([]byte(`{"success":true,"ticket_key":"MEET-7","ticket_url":"https://jira/MEET-7","demo_mode":true}`))
	})

	ticket, err := c.CreateJiraTicket(context.Background(), entities.BackendActionItem{Text: "Ship", Priority: "high", Confidence: 0.9})
	require.NoError(t, err)
	assert.True(t, ticket.Success)
	assert.Equal(t, "MEET-7", ticket.TicketKey)
	assert.True(t, ticket.DemoMode)
}

func TestPersonalizedContext_FallsBack(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/personalized-context" {
			http.NotFound(w, r)
			return
		}
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "what is a CRD", body["latest_text"])
		assert.NotNil(t, body["user_profile"])
		w.Write([]byte(`{"explanation":"A CRD extends the Kubernetes API."}`))
	})

	got, err := c.PersonalizedContext(context.Background(), ports.PersonalizedRequest{UserID: "u1", Text: "what is a CRD"})
	require.NoError(t, err)
	assert.Equal(t, "A CRD extends the Kubernetes API.", got.Message())
	assert.Equal(t, []string{"/api/personalized-context", "/api/personalized-assistant/analyze"}, paths)
}

func TestPersonalizedContext_Primary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/personalized-context", r.URL.Path)
		w.Write([]byte(`{"display_message":"Heads up: Alice mentioned your PR"}`))
	})

	got, err := c.PersonalizedContext(context.Background(), ports.PersonalizedRequest{UserID: "u1", Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Heads up: Alice mentioned your PR", got.Message())
}

func TestProcessMediaStream_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/process-media-stream", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "meeting.wav", header.Filename)
		assert.Equal(t, "RIFF....", string(data))

		w.Write([]byte("data: {\"type\":\"status\",\"message\":\"ok\"}\n"))
	})

	body, err := c.ProcessMediaStream(context.Background(), ports.Upload{
		Filename:    "meeting.wav",
		ContentType: "audio/wav",
		Body:        strings.NewReader("RIFF...."),
	})
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"status"`)
}

func TestProcessMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transcript":[{"speaker":"A","content":"hello"}],"action_items":[{"text":"Ship","priority":"low"}],"insights":["info"]}`))
	})

	res, err := c.ProcessMedia(context.Background(), ports.Upload{Filename: "a.mp3", Body: strings.NewReader("x")})
	require.NoError(t, err)
	require.Len(t, res.Transcript, 1)
	assert.Equal(t, "hello", res.Transcript[0].Body())
	assert.Len(t, res.ActionItems, 1)
	assert.Equal(t, []string{"info"}, res.Insights)
}

func TestMeetingEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/meeting/session_1/end":
			w.Write([]byte(`{"session_id":"session_1","summary":{"overview":"done"},"transcript_lines":4,"action_items":[]}`))
		case "/api/meeting/session_1/create-jira-tasks":
			w.Write([]byte(`{"created":2,"tasks":[{"success":true,"ticket_key":"A-1"},{"success":true,"ticket_key":"A-2"}]}`))
		case "/api/meeting/session_1/post-summary":
			assert.Equal(t, "slack", r.URL.Query().Get("platform"))
			w.Write([]byte(`{"success":true,"platform":"slack"}`))
		case "/api/health":
			assert.Equal(t, http.MethodGet, r.Method)
			w.Write([]byte(`{"status":"healthy","jira_configured":true}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	summary, err := c.EndMeeting(ctx, "session_1")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TranscriptLines)

	tasks, err := c.CreateJiraTasks(ctx, "session_1")
	require.NoError(t, err)
	assert.Equal(t, 2, tasks.Created)

	posted, err := c.PostSummary(ctx, "session_1", "slack")
	require.NoError(t, err)
	assert.True(t, posted.Success)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.True(t, health.JiraConfigured)
}
