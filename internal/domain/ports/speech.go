package ports

import (
	"context"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

// RecognitionKind tells the session what a recognizer produced
type RecognitionKind int

const (
	RecognitionInterim RecognitionKind = iota
	RecognitionFinal
	RecognitionStatus
	RecognitionActionItems
	RecognitionError
)

// Recognition is one event emitted by a recognizer
type Recognition struct {
	Kind        RecognitionKind
	Speaker     string
	Text        string
	Emotion     *entities.Emotion
	ActionItems []entities.BackendActionItem
	Err         error
}

// RecognitionSink receives recognizer output. It must not block for long.
type RecognitionSink func(Recognition)

// Recognizer is a running speech-recognition capability owned by one session.
type Recognizer interface {
	// Start begins capture and delivers results to sink until Stop or ctx ends.
	Start(ctx context.Context, sessionID string, sink RecognitionSink) error
	// Stop releases the capture resources. Safe to call more than once.
	Stop() error
}

// RecognizerProvider acquires a recognizer, or fails with
// entities.ErrCapabilityUnavailable when none can exist here.
type RecognizerProvider interface {
	Acquire() (Recognizer, error)
	Name() string
}

// Notifier publishes session snapshots to interested listeners
type Notifier interface {
	Publish(ctx context.Context, snapshot entities.Session) error
	Close() error
}

// MediaArchive keeps a copy of uploaded media
type MediaArchive interface {
	Archive(ctx context.Context, sessionID string, upload Upload) (string, error)
}
