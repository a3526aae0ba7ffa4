package media

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-assistant-client/errors"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/sse"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/session"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

// DefaultMaxBytes is the upload ceiling when none is configured.
const DefaultMaxBytes int64 = 1 << 30

var allowedExtensions = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/m4a",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".flv":  "video/x-flv",
}

var allowedTypes = map[string]bool{
	"audio/wav":        true,
	"audio/mp3":        true,
	"audio/mpeg":       true,
	"audio/mp4":        true,
	"audio/m4a":        true,
	"audio/webm":       true,
	"audio/ogg":        true,
	"video/mp4":        true,
	"video/quicktime":  true,
	"video/x-msvideo":  true,
	"video/x-matroska": true,
	"video/x-flv":      true,
}

// Service uploads meeting recordings to the backend and feeds the results
// into the session
type Service interface {
	// Validate checks a file before any network call
	Validate(filename, contentType string, size int64) error

	// Process validates, optionally archives, and processes one upload
	Process(ctx context.Context, upload ports.Upload, mode entities.UploadMode) (*Result, error)
}

// Result summarizes one processed upload
type Result struct {
	SessionID  string              `json:"session_id"`
	Mode       entities.UploadMode `json:"mode"`
	ArchiveKey string              `json:"archive_key,omitempty"`
	Events     int                 `json:"events"`
	Skipped    int                 `json:"skipped"`
}

// Options tune ingestion. A nil Archive disables archiving.
type Options struct {
	MaxBytes    int64
	DefaultMode entities.UploadMode
	Archive     ports.MediaArchive
}

type ingestion struct {
	backend ports.Backend
	session session.Service
	logger  *zap.Logger
	metrics *metrics.AssistantMetrics
	opts    Options
}

// NewService creates the media ingestion use case
func NewService(backend ports.Backend, sess session.Service, opts Options, logger *zap.Logger, m *metrics.AssistantMetrics) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if !opts.DefaultMode.Valid() {
		opts.DefaultMode = entities.UploadStream
	}
	return &ingestion{
		backend: backend,
		session: sess,
		logger:  logger.With(zap.String("component", "media")),
		metrics: m,
		opts:    opts,
	}
}

func (s *ingestion) Validate(filename, contentType string, size int64) error {
	if !IsSupported(filename, contentType) {
		return apperrors.ErrInvalidMedia(filename, entities.ErrUnsupportedMedia)
	}
	if size > s.opts.MaxBytes {
		return apperrors.ErrMediaTooLarge(filename, s.opts.MaxBytes)
	}
	return nil
}

// IsSupported reports whether the extension or the MIME type is on the
// audio/video allow-list.
func IsSupported(filename, contentType string) bool {
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return true
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return allowedTypes[strings.ToLower(mediaType)]
	}
	return false
}

// ContentTypeFor guesses the MIME type of a supported file from its name.
func ContentTypeFor(filename string) string {
	if ct, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (s *ingestion) Process(ctx context.Context, upload ports.Upload, mode entities.UploadMode) (*Result, error) {
	if err := s.Validate(upload.Filename, upload.ContentType, upload.Size); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = s.opts.DefaultMode
	}
	if !mode.Valid() {
		return nil, apperrors.ErrInvalidArgument("mode must be stream or batch")
	}
	if upload.ContentType == "" {
		upload.ContentType = ContentTypeFor(upload.Filename)
	}

	sessionID, err := s.session.BeginUpload(ctx, mode)
	if err != nil {
		return nil, err
	}
	result := &Result{SessionID: sessionID, Mode: mode}

	s.logger.Info("📤 processing upload",
		zap.String("session_id", sessionID),
		zap.String("filename", upload.Filename),
		zap.Int64("size", upload.Size),
		zap.String("mode", string(mode)),
	)

	result.ArchiveKey = s.archive(ctx, sessionID, &upload)

	if mode == entities.UploadBatch {
		err = s.processBatch(ctx, upload)
	} else {
		err = s.processStream(ctx, upload, result)
	}
	return result, err
}

// archive stores a copy of a seekable upload and rewinds it. Failures are
// logged; processing goes on without the copy.
func (s *ingestion) archive(ctx context.Context, sessionID string, upload *ports.Upload) string {
	if s.opts.Archive == nil {
		return ""
	}
	seeker, ok := upload.Body.(io.Seeker)
	if !ok {
		s.logger.Warn("⚠️ upload is not seekable, skipping archive", zap.String("filename", upload.Filename))
		return ""
	}

	key, err := s.opts.Archive.Archive(ctx, sessionID, *upload)
	if _, seekErr := seeker.Seek(0, io.SeekStart); seekErr != nil {
		s.logger.Error("❌ failed to rewind upload after archiving", zap.Error(seekErr))
	}
	if err != nil {
		s.logger.Warn("⚠️ failed to archive upload",
			zap.String("filename", upload.Filename),
			zap.Error(apperrors.ErrStorageFailed("archive upload", err)),
		)
		return ""
	}
	s.logger.Info("🗄️ upload archived", zap.String("key", key))
	return key
}

func (s *ingestion) processBatch(ctx context.Context, upload ports.Upload) error {
	res, err := s.backend.ProcessMedia(ctx, upload)
	if err != nil {
		failure := apperrors.ErrProcessingFailed(err)
		s.finish(failure)
		return failure
	}
	if err := s.session.ApplyMediaResult(ctx, res); err != nil {
		s.finish(err)
		return err
	}
	s.logger.Info("✅ batch processing complete",
		zap.Int("transcript_lines", len(res.Transcript)),
		zap.Int("action_items", len(res.ActionItems)),
	)
	return nil
}

func (s *ingestion) processStream(ctx context.Context, upload ports.Upload, result *Result) error {
	body, err := s.backend.ProcessMediaStream(ctx, upload)
	if err != nil {
		failure := apperrors.ErrProcessingFailed(err)
		s.finish(failure)
		return failure
	}
	defer body.Close()

	decoder := sse.NewDecoder(s.logger, s.metrics)
	decodeErr := decoder.Decode(ctx, body, func(ev entities.StreamEvent) {
		result.Events++
		if err := s.session.ApplyStreamEvent(ctx, ev); err != nil {
			s.logger.Warn("⚠️ stream event not applied",
				zap.String("type", string(ev.Type)),
				zap.Error(err),
			)
		}
	})
	result.Skipped = decoder.Skipped()

	if decodeErr != nil {
		failure := apperrors.ErrStreamFailed(decodeErr)
		s.finish(failure)
		return failure
	}
	s.finish(nil)
	s.logger.Info("✅ stream processing complete",
		zap.Int("events", result.Events),
		zap.Int("skipped", result.Skipped),
	)
	return nil
}

// finish leaves processing even when the request context is already gone.
func (s *ingestion) finish(err error) {
	if finishErr := s.session.FinishUpload(context.Background(), err); finishErr != nil {
		s.logger.Debug("upload finish not applied", zap.Error(finishErr))
	}
}
