package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-assistant-client/errors"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/pkg/jobcontext"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

const (
	// EmotionContextSize is how many prior entries go with an emotion request.
	EmotionContextSize = 5
	// PersonalizedContextSize is how many entries go with a personalized-context request.
	PersonalizedContextSize = 10
)

// Service is the enrichment gateway in front of the backend
type Service interface {
	AnalyzeUtterance(ctx context.Context, entry entities.TranscriptEntry, recent []entities.TranscriptEntry) (*entities.EmotionAnalysis, error)
	RegenerateActionItems(ctx context.Context, transcript []entities.TranscriptEntry, existing []entities.ActionItem) ([]entities.BackendActionItem, error)
	CreateJiraTicket(ctx context.Context, item entities.ActionItem) (*entities.JiraTicket, error)
	FetchPersonalizedContext(ctx context.Context, latest string, recent []entities.TranscriptEntry) (string, error)
	PersonalizedEnabled() bool
	AskQuestion(ctx context.Context, question string, transcript []entities.TranscriptEntry) (*entities.Answer, error)

	EndMeeting(ctx context.Context, sessionID string) (*entities.MeetingSummary, error)
	CreateJiraTasks(ctx context.Context, sessionID string) (*entities.JiraTasksResult, error)
	PostSummary(ctx context.Context, sessionID, platform string) (*entities.PostSummaryResult, error)
	Health(ctx context.Context) (*entities.BackendHealth, error)
}

// Options tune the gateway
type Options struct {
	Profile    entities.UserProfile
	MaxRetries int
	RetryDelay time.Duration
}

type gateway struct {
	backend ports.Backend
	logger  *zap.Logger
	metrics *metrics.AssistantMetrics
	opts    Options
}

// NewService builds the gateway. logger and m may be nil.
func NewService(backend ports.Backend, opts Options, logger *zap.Logger, m *metrics.AssistantMetrics) Service {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &gateway{backend: backend, logger: logger, metrics: m, opts: opts}
}

// retry runs fn with backoff on retryable errors. Only idempotent calls use it.
func (g *gateway) retry(ctx context.Context, operation string, fn func(context.Context) error) error {
	ctx = jobcontext.SetMaxRetries(ctx, g.opts.MaxRetries+1)
	if g.opts.RetryDelay > 0 {
		ctx = jobcontext.SetRetryBaseDelay(ctx, g.opts.RetryDelay)
	}
	return jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		if attempt := jobcontext.GetRetryAttempt(ctx); attempt > 0 {
			g.metrics.ObserveRetry(operation)
			if g.logger != nil {
				g.logger.Debug("🔁 retrying backend call",
					zap.String("operation", operation),
					zap.Int("attempt", attempt),
				)
			}
		}
		return fn(ctx)
	})
}

func (g *gateway) AnalyzeUtterance(ctx context.Context, entry entities.TranscriptEntry, recent []entities.TranscriptEntry) (*entities.EmotionAnalysis, error) {
	if len(recent) > EmotionContextSize {
		recent = recent[len(recent)-EmotionContextSize:]
	}
	req := ports.EmotionRequest{
		Text:             entry.Text,
		Speaker:          entry.Speaker,
		RecentTranscript: entities.ToLines(recent),
	}

	var out *entities.EmotionAnalysis
	err := g.retry(ctx, "analyze_emotion", func(ctx context.Context) error {
		res, err := g.backend.AnalyzeEmotion(ctx, req)
		out = res
		return err
	})
	if err != nil {
		return nil, apperrors.ErrEnrichmentFailed("analyze emotion", err)
	}
	return out, nil
}

func (g *gateway) RegenerateActionItems(ctx context.Context, transcript []entities.TranscriptEntry, existing []entities.ActionItem) ([]entities.BackendActionItem, error) {
	if len(transcript) == 0 {
		return nil, apperrors.ErrInvalidArgument(entities.ErrEmptyTranscript.Error())
	}

	req := ports.ActionItemsRequest{
		Transcript:          entities.ToLines(transcript),
		ExistingActionItems: make([]entities.BackendActionItem, 0, len(existing)),
	}
	for _, item := range existing {
		req.ExistingActionItems = append(req.ExistingActionItems, item.ToBackend())
	}

	var items []entities.BackendActionItem
	err := g.retry(ctx, "generate_action_items", func(ctx context.Context) error {
		res, err := g.backend.GenerateActionItems(ctx, req)
		items = res
		return err
	})
	if err != nil {
		return nil, apperrors.ErrEnrichmentFailed("generate action items", err)
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNoActionItems()
	}

	if g.logger != nil {
		g.logger.Info("🎯 action items regenerated",
			zap.Int("count", len(items)),
			zap.Int("transcript_lines", len(transcript)),
		)
	}
	return items, nil
}

// CreateJiraTicket is never retried: a timed-out attempt may still have
// created the ticket.
func (g *gateway) CreateJiraTicket(ctx context.Context, item entities.ActionItem) (*entities.JiraTicket, error) {
	ticket, err := g.backend.CreateJiraTicket(ctx, item.ToJira())
	if err != nil {
		return nil, apperrors.ErrJiraFailed(item.ID, err)
	}
	if !ticket.Success {
		reason := ticket.Error
		if reason == "" {
			reason = ticket.Message
		}
		if reason == "" {
			reason = "unknown error"
		}
		return ticket, apperrors.ErrJiraFailed(item.ID, errors.New(reason))
	}

	if g.logger != nil {
		g.logger.Info("🎫 jira ticket created",
			zap.String("action_item_id", item.ID),
			zap.String("ticket_key", ticket.TicketKey),
			zap.Bool("demo_mode", ticket.DemoMode),
		)
	}
	return ticket, nil
}

func (g *gateway) PersonalizedEnabled() bool {
	return g.opts.Profile.UserID != "" || g.opts.Profile.Name != ""
}

// FetchPersonalizedContext returns "" when there is nothing new to show.
func (g *gateway) FetchPersonalizedContext(ctx context.Context, latest string, recent []entities.TranscriptEntry) (string, error) {
	if !g.PersonalizedEnabled() {
		return "", nil
	}
	if len(recent) > PersonalizedContextSize {
		recent = recent[len(recent)-PersonalizedContextSize:]
	}
	profile := g.opts.Profile
	req := ports.PersonalizedRequest{
		UserID:           profile.UserID,
		UserProfile:      &profile,
		Text:             latest,
		RecentTranscript: entities.ToLines(recent),
	}

	var res *entities.PersonalizedContext
	err := g.retry(ctx, "personalized_context", func(ctx context.Context) error {
		out, err := g.backend.PersonalizedContext(ctx, req)
		res = out
		return err
	})
	if err != nil {
		return "", apperrors.ErrEnrichmentFailed("personalized context", err)
	}
	return strings.TrimSpace(res.Message()), nil
}

func (g *gateway) AskQuestion(ctx context.Context, question string, transcript []entities.TranscriptEntry) (*entities.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.ErrInvalidArgument("question is required")
	}
	req := ports.QuestionRequest{Question: question, Transcript: entities.ToLines(transcript)}

	var answer *entities.Answer
	err := g.retry(ctx, "qa_ask", func(ctx context.Context) error {
		res, err := g.backend.AskQuestion(ctx, req)
		answer = res
		return err
	})
	if err != nil {
		return nil, apperrors.ErrEnrichmentFailed("ask question", err)
	}
	return answer, nil
}

func (g *gateway) EndMeeting(ctx context.Context, sessionID string) (*entities.MeetingSummary, error) {
	summary, err := g.backend.EndMeeting(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("end meeting", err)
	}
	return summary, nil
}

func (g *gateway) CreateJiraTasks(ctx context.Context, sessionID string) (*entities.JiraTasksResult, error) {
	res, err := g.backend.CreateJiraTasks(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("create jira tasks", err)
	}
	return res, nil
}

func (g *gateway) PostSummary(ctx context.Context, sessionID, platform string) (*entities.PostSummaryResult, error) {
	switch platform {
	case "teams", "slack":
	default:
		return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("unsupported platform %q", platform))
	}
	res, err := g.backend.PostSummary(ctx, sessionID, platform)
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("post summary", err)
	}
	return res, nil
}

func (g *gateway) Health(ctx context.Context) (*entities.BackendHealth, error) {
	var health *entities.BackendHealth
	err := g.retry(ctx, "health", func(ctx context.Context) error {
		res, err := g.backend.Health(ctx)
		health = res
		return err
	})
	if err != nil {
		return nil, apperrors.ErrExternalAPIFailed("health", err)
	}
	return health, nil
}
