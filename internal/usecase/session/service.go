package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/enrichment"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

// Service defines the session use case
type Service interface {
	// Snapshot returns a copy of the current session state
	Snapshot(ctx context.Context) (entities.Session, error)

	// StartRecording acquires the speech capability and starts a new session
	StartRecording(ctx context.Context) error

	// StopRecording releases the speech capability
	StopRecording(ctx context.Context) error

	// ClearSession empties the session. Refused while recording.
	ClearSession(ctx context.Context) error

	// GenerateActionItems regenerates the action item list on demand
	GenerateActionItems(ctx context.Context) ([]entities.ActionItem, error)

	// CreateJiraTicket creates a ticket for one action item and marks it completed
	CreateJiraTicket(ctx context.Context, itemID string) (*entities.JiraTicket, error)

	// Ask answers a question against the transcript and logs it
	Ask(ctx context.Context, question string) (entities.Question, error)

	// BeginUpload moves the session into processing for an uploaded file
	BeginUpload(ctx context.Context, mode entities.UploadMode) (string, error)

	// ApplyStreamEvent folds one processing-stream frame into the session
	ApplyStreamEvent(ctx context.Context, ev entities.StreamEvent) error

	// ApplyMediaResult replaces the session content with a batch result
	ApplyMediaResult(ctx context.Context, res *entities.MediaResult) error

	// FinishUpload leaves processing, surfacing err when set
	FinishUpload(ctx context.Context, err error) error

	// Close stops capture and the event loop
	Close() error
}

// NoticeStore keeps transient notices until their TTL runs out
type NoticeStore interface {
	Set(key, value string, ttl time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

// Options wires the controller's collaborators. Only Enrichment and Notices
// are required.
type Options struct {
	Provider   ports.RecognizerProvider
	Enrichment enrichment.Service
	Notifier   ports.Notifier
	Notices    NoticeStore
	Logger     *zap.Logger
	Metrics    *metrics.AssistantMetrics

	NoticeTTL         time.Duration
	EnrichmentTimeout time.Duration
	TickInterval      time.Duration
}

const (
	defaultNoticeTTL    = 3 * time.Second
	defaultTickInterval = time.Second

	// regenerationCadence triggers action item regeneration every N finalized entries.
	regenerationCadence = 3

	noticeKey = "session:notice"
)

var _ Service = (*Controller)(nil)
