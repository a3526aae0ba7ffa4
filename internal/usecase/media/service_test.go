package media

import (
	"bytes"
	"context"
	stdErrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-assistant-client/errors"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/session"
)

// streamBackend serves canned processing responses. Unused methods panic.
type streamBackend struct {
	ports.Backend

	stream    string
	streamErr error
	batch     *entities.MediaResult
	received  []byte
}

func (b *streamBackend) ProcessMediaStream(_ context.Context, upload ports.Upload) (io.ReadCloser, error) {
	if b.streamErr != nil {
		return nil, b.streamErr
	}
	b.received, _ = io.ReadAll(upload.Body)
	return io.NopCloser(strings.NewReader(b.stream)), nil
}

func (b *streamBackend) ProcessMedia(_ context.Context, upload ports.Upload) (*entities.MediaResult, error) {
	b.received, _ = io.ReadAll(upload.Body)
	return b.batch, nil
}

type memoryArchive struct {
	data []byte
	err  error
}

func (a *memoryArchive) Archive(_ context.Context, sessionID string, upload ports.Upload) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.data, _ = io.ReadAll(upload.Body)
	return sessionID + "/" + upload.Filename, nil
}

func newController(t *testing.T) *session.Controller {
	t.Helper()
	store := cache.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)
	ctl := session.NewController(session.Options{Notices: store, Logger: zaptest.NewLogger(t)})
	t.Cleanup(func() { ctl.Close() })
	return ctl
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        bool
	}{
		{"standup.wav", "", true},
		{"STANDUP.MKV", "", true},
		{"clip.flv", "application/octet-stream", true},
		{"recording", "audio/mpeg", true},
		{"recording", "video/quicktime; codecs=avc1", true},
		{"notes.txt", "text/plain", false},
		{"notes.pdf", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename+"|"+tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.filename, tt.contentType))
		})
	}
}

func TestValidate(t *testing.T) {
	svc := NewService(&streamBackend{}, newController(t), Options{MaxBytes: 10}, zaptest.NewLogger(t), nil)

	assert.NoError(t, svc.Validate("a.mp3", "", 10))

	var appErr errors.AppError
	err := svc.Validate("a.mp3", "", 11)
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_MEDIA_TOO_LARGE, appErr.Code)

	err = svc.Validate("a.docx", "application/msword", 1)
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_MEDIA_INVALID, appErr.Code)
	assert.Equal(t, "Please upload an audio or video file", appErr.Message)
}

func TestProcess_RejectsBeforeNetwork(t *testing.T) {
	backend := &streamBackend{streamErr: stdErrors.New("must not be called")}
	svc := NewService(backend, newController(t), Options{}, zaptest.NewLogger(t), nil)

	_, err := svc.Process(context.Background(), ports.Upload{Filename: "slides.pptx", Body: strings.NewReader("x")}, entities.UploadStream)
	require.Error(t, err)
	assert.Nil(t, backend.received)
}

func TestProcess_Stream(t *testing.T) {
	stream := strings.Join([]string{
		`data: {"type":"status","message":"Transcribing audio..."}`,
		`data: {"type":"transcript","line":{"speaker":"Bob","text":"Hi"}}`,
		`data: not json`,
		`data: {"type":"error","message":"speaker detection degraded"}`,
		`data: {"type":"transcript","data":{"speaker":"Ann","text":"Hello"}}`,
		`data: {"type":"action_items","action_items":[{"text":"Send notes","assignee":"Ann","priority":"high"}]}`,
		`data: {"type":"complete","message":"Processing complete!"}`,
	}, "\n")

	ctl := newController(t)
	backend := &streamBackend{stream: stream}
	archive := &memoryArchive{}
	svc := NewService(backend, ctl, Options{Archive: archive}, zaptest.NewLogger(t), nil)

	res, err := svc.Process(context.Background(), ports.Upload{
		Filename: "meeting.wav",
		Size:     8,
		Body:     bytes.NewReader([]byte("RIFFdata")),
	}, entities.UploadStream)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Events)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, res.SessionID+"/meeting.wav", res.ArchiveKey)
	assert.Equal(t, "RIFFdata", string(archive.data))
	assert.Equal(t, "RIFFdata", string(backend.received))

	s, err := ctl.Snapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsProcessing)
	require.Len(t, s.Transcript, 2)
	assert.Equal(t, "Bob", s.Transcript[0].Speaker)
	assert.Equal(t, "Hello", s.Transcript[1].Text)
	require.Len(t, s.ActionItems, 1)
	assert.Equal(t, "Send notes (Ann) [high]", s.ActionItems[0].String())
	assert.Equal(t, "speaker detection degraded", s.Error)
	assert.Equal(t, "Processing complete!", s.Notice)
}

func TestProcess_StreamWithoutComplete(t *testing.T) {
	ctl := newController(t)
	backend := &streamBackend{stream: `data: {"type":"transcript","line":{"speaker":"Bob","text":"Hi"}}`}
	svc := NewService(backend, ctl, Options{}, zaptest.NewLogger(t), nil)

	_, err := svc.Process(context.Background(), ports.Upload{Filename: "a.ogg", Body: strings.NewReader("x")}, "")
	require.NoError(t, err)

	s, err := ctl.Snapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsProcessing)
	assert.Len(t, s.Transcript, 1)
}

func TestProcess_StreamRequestFails(t *testing.T) {
	ctl := newController(t)
	svc := NewService(&streamBackend{streamErr: stdErrors.New("backend returned status 502")}, ctl, Options{}, zaptest.NewLogger(t), nil)

	_, err := svc.Process(context.Background(), ports.Upload{Filename: "a.mp4", Body: strings.NewReader("x")}, entities.UploadStream)

	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_MEDIA_PROCESS_FAILED, appErr.Code)

	s, err := ctl.Snapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsProcessing)
	assert.Equal(t, "Processing failed", s.Error)
}

func TestProcess_Batch(t *testing.T) {
	ctl := newController(t)
	backend := &streamBackend{batch: &entities.MediaResult{
		Transcript:  []entities.BackendLine{{Speaker: "A", Text: "one"}, {Speaker: "B", Content: "two"}},
		ActionItems: []entities.BackendActionItem{{Text: "Follow up", Priority: "low"}},
		Insights:    []string{"Watch out for scope creep"},
	}}
	archive := &memoryArchive{err: stdErrors.New("bucket missing")}
	svc := NewService(backend, ctl, Options{Archive: archive}, zaptest.NewLogger(t), nil)

	res, err := svc.Process(context.Background(), ports.Upload{
		Filename: "demo.mov",
		Body:     bytes.NewReader([]byte("moov")),
	}, entities.UploadBatch)
	require.NoError(t, err)
	assert.Empty(t, res.ArchiveKey)
	assert.Equal(t, "moov", string(backend.received))

	s, err := ctl.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Transcript, 2)
	assert.Len(t, s.ActionItems, 1)
	assert.Equal(t, []string{"Watch out for scope creep"}, s.Insights)
	assert.Equal(t, "File processed successfully!", s.Notice)
}

func TestProcess_InvalidMode(t *testing.T) {
	svc := NewService(&streamBackend{}, newController(t), Options{}, zaptest.NewLogger(t), nil)

	_, err := svc.Process(context.Background(), ports.Upload{Filename: "a.wav", Body: strings.NewReader("x")}, "live")
	require.Error(t, err)
}
