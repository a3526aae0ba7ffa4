package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-assistant-client/internal/usecase/errors"
)

// BeginUpload puts the session into processing. Stream mode starts from an
// empty session; batch mode keeps questions and the personalized message
// until the result replaces the rest.
func (c *Controller) BeginUpload(ctx context.Context, mode entities.UploadMode) (string, error) {
	var (
		id  string
		err error
	)
	doErr := c.do(ctx, func() {
		switch {
		case c.recording || c.starting:
			err = usecaseErrors.ErrUploadWhileRecording
			c.setError(err)
			c.changed()
			return
		case c.processing:
			err = usecaseErrors.ErrUploadInProgress
			return
		}

		if mode == entities.UploadStream {
			c.resetContent()
			c.id = entities.NewSessionID()
		}
		if c.id == "" {
			c.id = entities.NewSessionID()
		}
		c.errMsg = ""
		c.processing = true
		id = c.id
		c.logger.Info("📤 upload processing started",
			zap.String("session_id", id),
			zap.String("mode", string(mode)),
		)
		c.changed()
	})
	if doErr != nil {
		return "", doErr
	}
	return id, err
}

// ApplyStreamEvent folds one processing-stream frame into the session.
// Error frames are surfaced but do not end processing.
func (c *Controller) ApplyStreamEvent(ctx context.Context, ev entities.StreamEvent) error {
	return c.do(ctx, func() {
		switch ev.Type {
		case entities.StreamStatus:
			if msg := ev.Text(); msg != "" {
				c.setNotice(msg)
			}
		case entities.StreamTranscript:
			entry, ok := c.asm.AppendServerEvent(ev)
			if !ok {
				return
			}
			c.metrics.SetTranscriptEntries(len(c.asm.Committed()))
			c.logger.Debug("📝 transcript line received", zap.String("entry_id", entry.ID))
		case entities.StreamActionItems:
			c.actionItems = entities.MergeActionItems(c.actionItems, ev.Items())
			if len(ev.Insights) > 0 {
				c.insights = cleanInsights(ev.Insights)
			}
		case entities.StreamError:
			msg := ev.Text()
			if msg == "" {
				msg = "Processing failed"
			}
			c.errMsg = msg
		case entities.StreamComplete:
			if msg := ev.Text(); msg != "" {
				c.setNotice(msg)
			}
			if len(ev.Insights) > 0 {
				c.insights = cleanInsights(ev.Insights)
			}
			c.processing = false
		default:
			return
		}
		c.changed()
	})
}

// ApplyMediaResult replaces transcript, action items and insights with a
// batch processing result
func (c *Controller) ApplyMediaResult(ctx context.Context, res *entities.MediaResult) error {
	entries := make([]entities.TranscriptEntry, 0, len(res.Transcript))
	for _, line := range res.Transcript {
		if line.Body() == "" {
			continue
		}
		entries = append(entries, line.ToEntry())
	}

	return c.do(ctx, func() {
		c.asm.Replace(entries)
		c.actionItems = entities.MergeActionItems(nil, res.ActionItems)
		c.insights = cleanInsights(res.Insights)
		c.processing = false
		c.metrics.SetTranscriptEntries(len(entries))
		c.setNotice("File processed successfully!")
		c.changed()
	})
}

// FinishUpload ends processing. A non-nil err is surfaced on the session.
func (c *Controller) FinishUpload(ctx context.Context, err error) error {
	return c.do(ctx, func() {
		if !c.processing && err == nil {
			return
		}
		c.processing = false
		if err != nil {
			c.setError(err)
			c.logger.Warn("⚠️ upload processing failed",
				zap.String("session_id", c.id),
				zap.Error(err),
			)
		}
		c.changed()
	})
}

func cleanInsights(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
